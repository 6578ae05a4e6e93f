package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"multasapi/internal/events"
	"multasapi/internal/model"
	"multasapi/internal/storage"
	"multasapi/internal/upload"
)

const (
	DefaultStorageLimit   = 50
	MaxStorageLimit       = 100
	DefaultExpiryMinutes  = 60
	MaxExpiryMinutes      = 1440
	defaultUploadParallel = 4
)

// FileUpload is one part of a multipart upload. Open is called once, from the upload goroutine.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadedFile struct {
	File        string `json:"file"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type FailedUpload struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// UploadResult keeps per-file outcomes in request order.
type UploadResult struct {
	Uploaded     []UploadedFile `json:"uploaded"`
	Failed       []FailedUpload `json:"failed"`
	TotalFiles   int            `json:"totalFiles"`
	SuccessCount int            `json:"successCount"`
	FailureCount int            `json:"failureCount"`
}

type DownloadLink struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"`
	FilePath    string `json:"filePath"`
}

// StorageService defines the bucket browsing use cases.
type StorageService interface {
	List(ctx context.Context, prefix string, page, limit int) (*model.StorageListing, error)
	CreateFolder(ctx context.Context, folderPath string) (string, error)
	Upload(ctx context.Context, dest string, files []FileUpload) (*UploadResult, error)
	Delete(ctx context.Context, objectPath string) error
	DownloadURL(ctx context.Context, filePath string, expiresMinutes int) (*DownloadLink, error)
	Open(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error)
	Health(ctx context.Context) error
}

type storageService struct {
	store       storage.Storage
	policy      upload.Policy
	publisher   events.Publisher
	log         *zap.Logger
	concurrency int
}

// NewStorageService constructs a StorageService. concurrency bounds parallel uploads within one request.
func NewStorageService(store storage.Storage, policy upload.Policy, publisher events.Publisher, log *zap.Logger, concurrency int) StorageService {
	if concurrency <= 0 {
		concurrency = defaultUploadParallel
	}
	if publisher == nil {
		publisher = events.Noop()
	}
	return &storageService{store: store, policy: policy, publisher: publisher, log: log, concurrency: concurrency}
}

func (s *storageService) List(ctx context.Context, prefix string, page, limit int) (*model.StorageListing, error) {
	if page < 1 {
		return nil, invalid("page", "número da página deve ser um inteiro maior que 0")
	}
	if limit < 1 || limit > MaxStorageLimit {
		return nil, invalid("limit", "limite deve estar entre 1 e %d", MaxStorageLimit)
	}
	return s.store.List(ctx, prefix, page, limit)
}

func (s *storageService) CreateFolder(ctx context.Context, folderPath string) (string, error) {
	if folderPath == "" {
		return "", invalid("path", "caminho da pasta é obrigatório")
	}
	if !upload.ValidFolderPath(folderPath) {
		return "", invalid("path", "nome da pasta contém caracteres inválidos")
	}

	key, err := s.store.CreateFolder(ctx, folderPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return "", ErrDuplicate
		}
		return "", err
	}
	s.publish(ctx, events.FolderCreated, key, nil)
	return key, nil
}

func (s *storageService) Upload(ctx context.Context, dest string, files []FileUpload) (*UploadResult, error) {
	if err := s.policy.CheckCount(len(files)); err != nil {
		return nil, err
	}
	if !upload.ValidDestination(dest) {
		return nil, invalid("path", "caminho de destino contém caracteres inválidos")
	}
	for _, f := range files {
		if err := s.policy.CheckFile(f.Name, f.ContentType, f.Size); err != nil {
			return nil, err
		}
	}

	type outcome struct {
		info storage.ObjectInfo
		err  error
	}
	outcomes := make([]outcome, len(files))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, f := range files {
		g.Go(func() error {
			info, err := s.putOne(ctx, dest, f)
			outcomes[i] = outcome{info: info, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := &UploadResult{
		Uploaded:   make([]UploadedFile, 0, len(files)),
		Failed:     make([]FailedUpload, 0),
		TotalFiles: len(files),
	}
	for i, o := range outcomes {
		if o.err != nil {
			s.log.Warn("upload failed", zap.String("file", files[i].Name), zap.Error(o.err))
			res.Failed = append(res.Failed, FailedUpload{File: files[i].Name, Error: uploadErrorMessage(o.err)})
			continue
		}
		res.Uploaded = append(res.Uploaded, UploadedFile{
			File:        files[i].Name,
			Path:        o.info.Key,
			Size:        o.info.Size,
			ContentType: o.info.ContentType,
		})
		s.publish(ctx, events.ObjectUploaded, o.info.Key, map[string]any{"size": o.info.Size, "contentType": o.info.ContentType})
	}
	res.SuccessCount = len(res.Uploaded)
	res.FailureCount = len(res.Failed)
	return res, nil
}

func (s *storageService) putOne(ctx context.Context, dest string, f FileUpload) (storage.ObjectInfo, error) {
	rc, err := f.Open()
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("open part: %w", err)
	}
	defer rc.Close()

	return s.store.Put(ctx, storage.JoinKey(dest, f.Name), rc, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
	})
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, storage.ErrObjectExists) {
		return "arquivo já existe no destino"
	}
	return "erro ao enviar arquivo"
}

func (s *storageService) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return invalid("path", "caminho do objeto é obrigatório")
	}
	if err := s.store.Delete(ctx, objectPath); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publish(ctx, events.ObjectDeleted, objectPath, map[string]any{"folder": storage.IsFolderKey(objectPath)})
	return nil
}

func (s *storageService) DownloadURL(ctx context.Context, filePath string, expiresMinutes int) (*DownloadLink, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, invalid("path", "caminho do arquivo é obrigatório")
	}
	if expiresMinutes < 1 || expiresMinutes > MaxExpiryMinutes {
		return nil, invalid("expires", "tempo de expiração deve ser entre 1 e %d minutos", MaxExpiryMinutes)
	}

	u, err := s.store.PresignGet(ctx, filePath, time.Duration(expiresMinutes)*time.Minute)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &DownloadLink{DownloadURL: u, ExpiresIn: expiresMinutes, FilePath: filePath}, nil
}

func (s *storageService) Open(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error) {
	if filePath == "" || storage.IsFolderKey(filePath) {
		return nil, storage.ObjectInfo{}, invalid("path", "caminho do arquivo é obrigatório")
	}
	rc, info, err := s.store.Get(ctx, filePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *storageService) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// publish is best effort: a broker outage never fails the request.
func (s *storageService) publish(ctx context.Context, t events.Type, key string, data any) {
	if err := s.publisher.Publish(ctx, events.New(t, key, requestIDFrom(ctx), data)); err != nil {
		s.log.Warn("event publish failed", zap.String("event", string(t)), zap.String("key", key), zap.Error(err))
	}
}
