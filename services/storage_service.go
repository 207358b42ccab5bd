package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ju699/FlexFood/utils"
)

// ErrRetryLimitExceeded marks a resumable upload that exhausted its per-chunk
// retries. Callers show a distinct message for this case.
var ErrRetryLimitExceeded = errors.New("upload retry limit exceeded")

// ProgressFunc receives percent-complete updates during a resumable upload.
type ProgressFunc func(percent int)

// BlobStore is the storage backend behind the gateway. The default
// implementation writes to local disk; an object-storage SDK can be slotted
// in without touching the upload strategies.
type BlobStore interface {
	Save(path string, data []byte) error
	AppendChunk(path string, chunk []byte) error
	Remove(path string) error
	URL(path string) string
}

// DiskStore persists blobs under BaseDir and serves them from
// {BaseURL}/uploads/{path}.
type DiskStore struct {
	BaseDir string
	BaseURL string
}

func NewDiskStore(baseDir, baseURL string) *DiskStore {
	return &DiskStore{BaseDir: baseDir, BaseURL: baseURL}
}

func (s *DiskStore) fullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}
	return filepath.Join(s.BaseDir, clean), nil
}

func (s *DiskStore) Save(path string, data []byte) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (s *DiskStore) AppendChunk(path string, chunk []byte) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(chunk); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *DiskStore) Remove(path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) URL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/uploads/" + strings.TrimLeft(path, "/")
}

// ResumableUploader writes the payload in chunks, reporting progress after
// each one and retrying a failed chunk up to MaxRetries times before giving
// up with ErrRetryLimitExceeded.
type ResumableUploader struct {
	ChunkSize  int
	MaxRetries int
}

func (u *ResumableUploader) Upload(ctx context.Context, store BlobStore, path string, data []byte, progress ProgressFunc) error {
	chunkSize := u.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 256 << 10
	}
	retries := u.MaxRetries
	if retries <= 0 {
		retries = 3
	}

	// Start clean so a previous partial write cannot corrupt the object.
	if err := store.Remove(path); err != nil {
		return err
	}

	if len(data) == 0 {
		if err := store.Save(path, nil); err != nil {
			return err
		}
		if progress != nil {
			progress(100)
		}
		return nil
	}

	for offset := 0; offset < len(data); offset += chunkSize {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}

		var err error
		for attempt := 1; ; attempt++ {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err = store.AppendChunk(path, data[offset:end]); err == nil {
				break
			}
			if attempt >= retries {
				return fmt.Errorf("%w: chunk at offset %d: %v", ErrRetryLimitExceeded, offset, err)
			}
		}

		if progress != nil {
			progress(end * 100 / len(data))
		}
	}

	return nil
}

// StorageGateway uploads a file and returns its public URL. The resumable
// strategy is attempted first; on any failure the one-shot write is used as
// fallback with the same path and content.
type StorageGateway struct {
	Store     BlobStore
	Resumable *ResumableUploader
}

func NewStorageGateway(store BlobStore) *StorageGateway {
	return &StorageGateway{
		Store:     store,
		Resumable: &ResumableUploader{ChunkSize: 256 << 10, MaxRetries: 3},
	}
}

func (g *StorageGateway) Upload(ctx context.Context, path string, data []byte, progress ProgressFunc) (string, error) {
	resumableErr := g.Resumable.Upload(ctx, g.Store, path, data, progress)
	if resumableErr != nil {
		utils.ErrorLogger.Printf("resumable upload failed for %s, falling back: %v", path, resumableErr)

		if err := g.Store.Remove(path); err != nil {
			return "", err
		}
		if err := g.Store.Save(path, data); err != nil {
			if errors.Is(resumableErr, ErrRetryLimitExceeded) {
				return "", fmt.Errorf("%w (fallback failed: %v)", ErrRetryLimitExceeded, err)
			}
			return "", err
		}
	}
	return g.Store.URL(path), nil
}

// ObjectPath builds the destination path for an upload:
// restaurants/{restaurantID}/{purpose}/{timestamp}_{filename}. The timestamp
// prefix keeps concurrent uploads to the same logical slot from overwriting
// each other.
func ObjectPath(restaurantID uint, purpose, filename string) string {
	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return fmt.Sprintf("restaurants/%d/%s/%d_%s", restaurantID, purpose, time.Now().UnixMilli(), name)
}
