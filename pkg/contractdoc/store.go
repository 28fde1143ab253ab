package contractdoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DocumentStore keeps signed contracts and returns a location to record on
// the agreement.
type DocumentStore interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: baseURL}
}

// Save writes the file atomically. Saving the same name twice overwrites it.
func (s *LocalStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = unsafeName.ReplaceAllString(name, "_")
	dir := filepath.Join(s.dir, "contracts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create contracts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return s.baseURL + "/uploads/contracts/" + name, nil
}
