package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"

	"quill/internal/core/errs"
	mediaPort "quill/internal/ports/media"
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DiskImageStore writes uploads under dir with random names. Paths it returns
// are relative to dir and meant to be served from /media/.
type DiskImageStore struct {
	dir string
}

func NewDiskImageStore(dir string) (*DiskImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "post"), 0o755); err != nil {
		return nil, err
	}
	return &DiskImageStore{dir: dir}, nil
}

func (s *DiskImageStore) Save(up *mediaPort.Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExts[ext] {
		return "", errs.Validation("image", "unsupported file type")
	}

	name := filepath.Join("post", uuid.Must(uuid.NewV4()).String()+ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, up.Reader); err != nil {
		return "", err
	}
	return filepath.ToSlash(name), nil
}
