package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a directory served as static files by the
// HTTP layer. URLs are "<baseURL>/uploads/<objectPath>".
type LocalStore struct {
	rootDir string
	baseURL string
}

var _ Store = &LocalStore{}

func NewLocalStore(rootDir, baseURL string) *LocalStore {
	return &LocalStore{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalStore) Put(ctx context.Context, localPath, objectPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.rootDir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("copy object: %w", err)
	}

	return s.baseURL + "/uploads/" + objectPath, nil
}
