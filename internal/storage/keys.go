package storage

import (
	"mime"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"multasapi/internal/model"
)

const defaultContentType = "application/octet-stream"

// FolderKey normalizes a folder path to end with exactly one "/".
func FolderKey(p string) string {
	return strings.TrimRight(p, "/") + "/"
}

// JoinKey builds the object key for a file uploaded into dest.
// An empty dest puts the file at the bucket root.
func JoinKey(dest, fileName string) string {
	dest = strings.TrimRight(dest, "/")
	if dest == "" {
		return fileName
	}
	return dest + "/" + fileName
}

// IsFolderKey reports whether key denotes a folder.
func IsFolderKey(key string) bool {
	return strings.HasSuffix(key, "/")
}

func contentTypeFor(key, stored string) string {
	if stored != "" {
		return stored
	}
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return defaultContentType
}

// collectPage drains a non-recursive listing of prefix and returns the requested window.
// Folders come first, each group sorted by key, and the marker object equal to prefix is skipped.
func collectPage(objects <-chan minio.ObjectInfo, prefix string, page, limit int) (*model.StorageListing, error) {
	var folders, files []model.StorageObject
	for obj := range objects {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == prefix {
			continue
		}
		if IsFolderKey(obj.Key) {
			folders = append(folders, model.StorageObject{
				Type:     model.ObjectTypeFolder,
				Name:     path.Base(strings.TrimSuffix(obj.Key, "/")),
				Path:     obj.Key,
				MimeType: model.ObjectTypeFolder,
			})
			continue
		}
		files = append(files, fileObject(obj))
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Path < folders[j].Path })
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	all := append(folders, files...)
	total := len(all)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]model.StorageObject, 0, end-start)
	items = append(items, all[start:end]...)

	return &model.StorageListing{
		Items:       items,
		CurrentPath: prefix,
		HasMore:     end < total,
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
	}, nil
}

func fileObject(obj minio.ObjectInfo) model.StorageObject {
	size := obj.Size
	return model.StorageObject{
		Type:     model.ObjectTypeFile,
		Name:     path.Base(obj.Key),
		Path:     obj.Key,
		Size:     &size,
		MimeType: contentTypeFor(obj.Key, obj.ContentType),
		// S3 keeps no creation time; both fields carry the last modification.
		TimeCreated: modTime(obj.LastModified),
		TimeUpdated: modTime(obj.LastModified),
	}
}

// firstByBasename returns the first file key whose last element equals name.
func firstByBasename(objects <-chan minio.ObjectInfo, name string) (string, error) {
	for obj := range objects {
		if obj.Err != nil {
			return "", obj.Err
		}
		if !IsFolderKey(obj.Key) && path.Base(obj.Key) == name {
			return obj.Key, nil
		}
	}
	return "", ErrObjectNotFound
}

// collectKeys gathers up to max file keys. max <= 0 means unbounded.
func collectKeys(objects <-chan minio.ObjectInfo, max int) (map[string]struct{}, bool, error) {
	keys := make(map[string]struct{})
	for obj := range objects {
		if obj.Err != nil {
			return nil, false, obj.Err
		}
		if IsFolderKey(obj.Key) {
			continue
		}
		if max > 0 && len(keys) >= max {
			return keys, true, nil
		}
		keys[obj.Key] = struct{}{}
	}
	return keys, false, nil
}

func modTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
