package upload

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"

	"multasapi/internal/config"
)

var (
	ErrNoFiles      = errors.New("no files were sent")
	ErrTooManyFiles = errors.New("too many files")
	ErrFileTooLarge = errors.New("file too large")
	ErrInvalidType  = errors.New("file type not allowed")
)

var (
	folderPathPattern  = regexp.MustCompile(`^[\w\-/]+$`)
	destinationPattern = regexp.MustCompile(`^[\w\-/]*$`)
)

// AllowedTypes is the MIME allow-list for uploads.
var AllowedTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "image/svg+xml", "image/bmp", "image/tiff",
	"application/pdf",
	"text/plain", "text/csv", "text/html", "text/css", "text/javascript", "text/xml",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.oasis.opendocument.text",
	"application/vnd.oasis.opendocument.spreadsheet",
	"application/vnd.oasis.opendocument.presentation",
	"application/zip", "application/x-rar-compressed", "application/x-7z-compressed", "application/gzip",
	"application/json", "application/xml",
	"application/octet-stream",
}

// Policy bounds a multipart upload request.
type Policy struct {
	MaxFileBytes int64
	MaxFiles     int
	allowed      map[string]struct{}
}

// NewPolicy builds a Policy from the UPLOAD_* settings and the MIME allow-list.
func NewPolicy(cfg config.UploadConfig) Policy {
	allowed := make(map[string]struct{}, len(AllowedTypes))
	for _, t := range AllowedTypes {
		allowed[t] = struct{}{}
	}
	return Policy{MaxFileBytes: cfg.MaxFileBytes, MaxFiles: cfg.MaxFiles, allowed: allowed}
}

// CheckCount validates the number of files in one request.
func (p Policy) CheckCount(n int) error {
	if n == 0 {
		return ErrNoFiles
	}
	if p.MaxFiles > 0 && n > p.MaxFiles {
		return fmt.Errorf("%w: maximum %d files per request", ErrTooManyFiles, p.MaxFiles)
	}
	return nil
}

// CheckFile validates one file's declared MIME type and size.
func (p Policy) CheckFile(name, contentType string, size int64) error {
	if p.MaxFileBytes > 0 && size > p.MaxFileBytes {
		return fmt.Errorf("%w: %s exceeds %d MB", ErrFileTooLarge, name, p.MaxFileBytes/(1024*1024))
	}
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if _, ok := p.allowed[mediaType]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidType, contentType)
	}
	return nil
}

// ValidFolderPath reports whether p may name a new folder.
func ValidFolderPath(p string) bool {
	return folderPathPattern.MatchString(p)
}

// ValidDestination reports whether p may be used as an upload destination. Empty means the bucket root.
func ValidDestination(p string) bool {
	return destinationPattern.MatchString(p)
}
