package storage

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multasapi/internal/model"
)

func feed(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func TestFolderKey(t *testing.T) {
	assert.Equal(t, "multas/2024/", FolderKey("multas/2024"))
	assert.Equal(t, "multas/2024/", FolderKey("multas/2024//"))
}

func TestJoinKey(t *testing.T) {
	tests := []struct {
		dest, name, want string
	}{
		{"", "AI123.pdf", "AI123.pdf"},
		{"multas", "AI123.pdf", "multas/AI123.pdf"},
		{"multas/2024///", "AI123.pdf", "multas/2024/AI123.pdf"},
		{"/", "AI123.pdf", "AI123.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinKey(tt.dest, tt.name), "dest=%q", tt.dest)
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("a/b.png", "image/png"))
	assert.Equal(t, "application/pdf", contentTypeFor("a/AI1.PDF", ""))
	assert.Equal(t, defaultContentType, contentTypeFor("a/noext", ""))
}

func TestCollectPage(t *testing.T) {
	mod := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	objects := func() <-chan minio.ObjectInfo {
		return feed(
			minio.ObjectInfo{Key: "multas/"},
			minio.ObjectInfo{Key: "multas/b.pdf", Size: 20, LastModified: mod},
			minio.ObjectInfo{Key: "multas/2024/"},
			minio.ObjectInfo{Key: "multas/a.pdf", Size: 10, LastModified: mod, ContentType: "application/pdf"},
			minio.ObjectInfo{Key: "multas/2023/"},
		)
	}

	t.Run("folders first and marker skipped", func(t *testing.T) {
		got, err := collectPage(objects(), "multas/", 1, 50)
		require.NoError(t, err)

		var paths []string
		for _, it := range got.Items {
			paths = append(paths, it.Path)
		}
		assert.Equal(t, []string{"multas/2023/", "multas/2024/", "multas/a.pdf", "multas/b.pdf"}, paths)
		assert.Equal(t, 4, got.TotalCount)
		assert.False(t, got.HasMore)
		assert.Equal(t, "multas/", got.CurrentPath)

		folder := got.Items[0]
		assert.Equal(t, model.ObjectTypeFolder, folder.Type)
		assert.Equal(t, "2023", folder.Name)
		assert.Nil(t, folder.Size)

		file := got.Items[3]
		assert.Equal(t, model.ObjectTypeFile, file.Type)
		assert.Equal(t, "b.pdf", file.Name)
		require.NotNil(t, file.Size)
		assert.Equal(t, int64(20), *file.Size)
		assert.Equal(t, "application/pdf", file.MimeType)
		require.NotNil(t, file.TimeUpdated)
		assert.True(t, mod.Equal(*file.TimeUpdated))
	})

	t.Run("window", func(t *testing.T) {
		got, err := collectPage(objects(), "multas/", 2, 3)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "multas/b.pdf", got.Items[0].Path)
		assert.False(t, got.HasMore)

		got, err = collectPage(objects(), "multas/", 1, 3)
		require.NoError(t, err)
		assert.Len(t, got.Items, 3)
		assert.True(t, got.HasMore)
	})

	t.Run("page past the end", func(t *testing.T) {
		got, err := collectPage(objects(), "multas/", 9, 10)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.NotNil(t, got.Items)
	})

	t.Run("listing error", func(t *testing.T) {
		_, err := collectPage(feed(minio.ObjectInfo{Err: errors.New("access denied")}), "", 1, 10)
		assert.EqualError(t, err, "access denied")
	})
}

func TestFirstByBasename(t *testing.T) {
	key, err := firstByBasename(feed(
		minio.ObjectInfo{Key: "AI1.pdf/"},
		minio.ObjectInfo{Key: "lote/AI10.pdf"},
		minio.ObjectInfo{Key: "lote/2024/AI1.pdf"},
		minio.ObjectInfo{Key: "outro/AI1.pdf"},
	), "AI1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "lote/2024/AI1.pdf", key)

	_, err = firstByBasename(feed(minio.ObjectInfo{Key: "x.pdf"}), "AI1.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestCollectKeys(t *testing.T) {
	objs := []minio.ObjectInfo{{Key: "a/"}, {Key: "a/1.pdf"}, {Key: "a/2.pdf"}, {Key: "3.pdf"}}

	keys, truncated, err := collectKeys(feed(objs...), 0)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, "3.pdf")

	keys, truncated, err = collectKeys(feed(objs...), 2)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Len(t, keys, 2)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: http.StatusNotFound}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}))
	assert.False(t, isNotFound(errors.New("dial tcp: connection refused")))
}
