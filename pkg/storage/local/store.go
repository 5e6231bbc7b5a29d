package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/pkg/storage"
)

type Config struct {
	// Dir is the root directory objects are written under.
	Dir string
	// PublicBaseURL is the URL prefix the directory is served from,
	// e.g. http://localhost:3000/uploads.
	PublicBaseURL string
	HTTPClient    *http.Client
}

// Store keeps artifacts on the local filesystem.
type Store struct {
	dir     string
	baseURL string
	client  *http.Client
}

var _ storage.ArtifactStore = &Store{}

func NewStore(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		client:  client,
	}, nil
}

// Put writes content under key. The content type is implied by the key's
// extension when the file is served.
func (s *Store) Put(ctx context.Context, key string, contentType string, content io.Reader) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", apperror.Storage("upload failed", err)
	}

	// write to a sibling temp file first so readers never see a partial object
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", apperror.Storage("upload failed", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, readerWithContext(ctx, content)); err != nil {
		tmp.Close()
		return "", apperror.Storage("upload failed", err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperror.Storage("upload failed", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", apperror.Storage("upload failed", err)
	}

	return s.baseURL + path.Clean("/"+key), nil
}

func (s *Store) PutFromURL(ctx context.Context, key string, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", apperror.Storage("download failed", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperror.Storage("download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperror.Storage("download failed", fmt.Errorf("source returned status %d", resp.StatusCode))
	}
	return s.Put(ctx, key, resp.Header.Get("Content-Type"), resp.Body)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return apperror.Storage("delete failed", err)
	}
	return nil
}

func (s *Store) resolve(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	if key == "" || cleaned == "/" || strings.Contains(key, "..") {
		return "", apperror.Storage("invalid storage key", fmt.Errorf("key %q", key))
	}
	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
