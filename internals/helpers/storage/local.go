package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage writes objects below Root. Objects have no public URL; they
// are read back through Open by the content download endpoint.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &LocalStorage{Root: root}, nil
}

func (s *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", errors.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "create object dir")
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "create object")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "write object")
	}
	return "", nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	src, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(src)
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "open object")
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	dst, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete object")
	}
	return nil
}
