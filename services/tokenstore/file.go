package tokenstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/codemaster/cli/core"
)

// FileStore persists the access token as a single file under the user's
// config dir, the client-local storage of this app.
type FileStore struct {
	path string
}

var _ core.TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading token file %s", s.path)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Wrapf(err, "creating token dir for %s", s.path)
	}
	return errors.Wrapf(os.WriteFile(s.path, []byte(token), 0600), "writing token file %s", s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing token file %s", s.path)
	}
	return nil
}
