package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mbertrand/piquante/internal/common"
)

// DiskStore keeps images as files in a local directory. The directory is
// served statically by the HTTP layer, so a reference resolves to
// <base URL>/images/<key>.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory served under /images/.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return key, nil
}

func (s *DiskStore) URL(_ context.Context, key string) (string, error) {
	if !validKey(key) {
		return "", common.ErrorNotFound
	}
	return s.baseURL + "/images/" + key, nil
}

func (s *DiskStore) Release(_ context.Context, key string) error {
	if !validKey(key) {
		return common.ErrorNotFound
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}

// validKey rejects anything that could escape the image directory. Keys are
// always generated here (uuid + extension), so a failure means a forged input.
func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\`) && key != "." && key != ".."
}
