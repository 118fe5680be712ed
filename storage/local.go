// storage/local.go
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on disk under UPLOAD_DIR and serves them as
// BASE_URL + /uploads/<name>.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore() *LocalStore {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(os.Getenv("BASE_URL"), "/"),
	}
}

func (s *LocalStore) Put(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(name))
	filename := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return s.baseURL + "/uploads/" + filename, nil
}

func (s *LocalStore) Delete(url string) error {
	idx := strings.LastIndex(url, "/uploads/")
	if idx < 0 {
		return errors.New("not a local blob reference")
	}
	filename := url[idx+len("/uploads/"):]
	// refuse anything that could escape the upload dir
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return errors.New("invalid blob reference")
	}
	return os.Remove(filepath.Join(s.dir, filename))
}

// Dir exposes the on-disk location for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
