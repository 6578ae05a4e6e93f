package mocks

import (
	"context"
	"io"

	"multasapi/internal/model"
	"multasapi/internal/repository"
	"multasapi/internal/service"
	"multasapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockInfractionService struct {
	mock.Mock
}

func (m *MockInfractionService) List(ctx context.Context, p service.InfractionListParams) (*service.InfractionPage, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InfractionPage), args.Error(1)
}

func (m *MockInfractionService) Export(ctx context.Context, offender, search string, w io.Writer) (int, error) {
	args := m.Called(ctx, offender, search, w)
	if f, ok := args.Get(0).(func(io.Writer) int); ok {
		return f(w), args.Error(1)
	}
	return args.Int(0), args.Error(1)
}

func (m *MockInfractionService) Get(ctx context.Context, id string) (*model.InfractionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InfractionRecord), args.Error(1)
}

func (m *MockInfractionService) ListOffenders(ctx context.Context) ([]model.OffenderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OffenderSummary), args.Error(1)
}

type MockOffenderService struct {
	mock.Mock
}

func (m *MockOffenderService) List(ctx context.Context, search string, page, limit int) (*service.OffenderPage, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OffenderPage), args.Error(1)
}

func (m *MockOffenderService) Get(ctx context.Context, id string) (*model.Offender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offender), args.Error(1)
}

func (m *MockOffenderService) Create(ctx context.Context, o *model.Offender) (*model.Offender, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offender), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) List(ctx context.Context, prefix string, page, limit int) (*model.StorageListing, error) {
	args := m.Called(ctx, prefix, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StorageListing), args.Error(1)
}

func (m *MockStorageService) CreateFolder(ctx context.Context, folderPath string) (string, error) {
	args := m.Called(ctx, folderPath)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Upload(ctx context.Context, dest string, files []service.FileUpload) (*service.UploadResult, error) {
	args := m.Called(ctx, dest, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, objectPath string) error {
	args := m.Called(ctx, objectPath)
	return args.Error(0)
}

func (m *MockStorageService) DownloadURL(ctx context.Context, filePath string, expiresMinutes int) (*service.DownloadLink, error) {
	args := m.Called(ctx, filePath, expiresMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadLink), args.Error(1)
}

func (m *MockStorageService) Open(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filePath)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorageService) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProcessedFileService struct {
	mock.Mock
}

func (m *MockProcessedFileService) List(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProcessedFile), args.Error(1)
}

func (m *MockProcessedFileService) Orphans(ctx context.Context, f repository.ProcessedFileFilter) ([]model.ProcessedFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProcessedFile), args.Error(1)
}

func (m *MockProcessedFileService) Delete(ctx context.Context, filePath string) (*model.FileDeletion, error) {
	args := m.Called(ctx, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileDeletion), args.Error(1)
}

func (m *MockProcessedFileService) BatchDelete(ctx context.Context, filePaths []string) (*model.BatchDeletion, error) {
	args := m.Called(ctx, filePaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchDeletion), args.Error(1)
}

func (m *MockProcessedFileService) History(ctx context.Context, limit, offset int) (*service.DeletionHistory, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeletionHistory), args.Error(1)
}
