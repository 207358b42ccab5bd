package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskStoreSaveAndURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080")

	err := store.Save("restaurants/1/logo/a.png", []byte("logo-bytes"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(store.BaseDir, "restaurants/1/logo/a.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("logo-bytes"), data)

	assert.Equal(t, "http://localhost:8080/uploads/restaurants/1/logo/a.png",
		store.URL("restaurants/1/logo/a.png"))
}

func TestDiskStoreConfinesPaths(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080")

	assert.NoError(t, store.Save("../../escape.txt", []byte("x")))

	_, err := os.Stat(filepath.Join(store.BaseDir, "escape.txt"))
	assert.NoError(t, err, "path must stay inside the base directory")
	_, err = os.Stat(filepath.Join(store.BaseDir, "..", "..", "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestResumableUploadProgressAndContent(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080")
	uploader := &ResumableUploader{ChunkSize: 10, MaxRetries: 3}

	data := bytes.Repeat([]byte("abc"), 25) // 75 bytes, 8 chunks
	var reports []int
	err := uploader.Upload(context.Background(), store, "restaurants/1/products/p.jpg", data, func(p int) {
		reports = append(reports, p)
	})
	assert.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(store.BaseDir, "restaurants/1/products/p.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, data, written)

	assert.NotEmpty(t, reports)
	assert.Equal(t, 100, reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i], reports[i-1], "progress must never go backwards")
	}
}

// flakyStore fails AppendChunk (and optionally Save) to exercise the fallback.
type flakyStore struct {
	*DiskStore
	failSave bool
}

func (s *flakyStore) AppendChunk(path string, chunk []byte) error {
	return errors.New("simulated network error")
}

func (s *flakyStore) Save(path string, data []byte) error {
	if s.failSave {
		return errors.New("simulated network error")
	}
	return s.DiskStore.Save(path, data)
}

func TestGatewayFallsBackToOneShot(t *testing.T) {
	disk := NewDiskStore(t.TempDir(), "http://localhost:8080")
	gw := NewStorageGateway(&flakyStore{DiskStore: disk})

	data := []byte("payload")
	url, err := gw.Upload(context.Background(), "restaurants/1/cover/c.jpg", data, nil)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/restaurants/1/cover/c.jpg", url)

	written, err := os.ReadFile(filepath.Join(disk.BaseDir, "restaurants/1/cover/c.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, data, written, "fallback must write the same content to the same path")
}

func TestGatewayRetryLimitExceeded(t *testing.T) {
	disk := NewDiskStore(t.TempDir(), "http://localhost:8080")
	gw := NewStorageGateway(&flakyStore{DiskStore: disk, failSave: true})

	_, err := gw.Upload(context.Background(), "restaurants/1/cover/c.jpg", []byte("payload"), nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetryLimitExceeded))
}

func TestObjectPath(t *testing.T) {
	path := ObjectPath(42, "products", "my photo.jpg")
	assert.True(t, strings.HasPrefix(path, "restaurants/42/products/"))
	assert.True(t, strings.HasSuffix(path, "_my_photo.jpg"))
	assert.NotContains(t, path, " ")
}
