package cartstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/NenadVrtue/webshop-triangle/internal/application/cart"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// FileStore persists the cart snapshot as a JSON file, standing in for
// the browser's local storage: one blob under the fixed cart key, and a
// corrupt blob degrades to an empty cart instead of failing the app.
type FileStore struct {
	path string
	log  logger.Logger
}

func NewFileStore(dir string, log logger.Logger) *FileStore {
	return &FileStore{
		path: filepath.Join(dir, cart.StorageKey+".json"),
		log:  log,
	}
}

func (s *FileStore) Load() ([]cart.Line, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.log.Warn("cart snapshot corrupt, treating as empty",
			logger.String("path", s.path),
			logger.Error(err),
		)
		return nil, nil
	}
	return lines, nil
}

func (s *FileStore) Save(lines []cart.Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
