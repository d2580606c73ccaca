package crawl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// StateStore persists the last processed meeting id per kind
type StateStore interface {
	Load(kind model.MeetingKind) (int, error)
	Save(kind model.MeetingKind, id int) error
}

// FileStateStore keeps one integer per kind in dir/current_<kind>_id.txt
type FileStateStore struct {
	dir string
}

// NewFileStateStore creates a state store in dir
func NewFileStateStore(dir string) *FileStateStore {
	return &FileStateStore{dir: dir}
}

func (s *FileStateStore) path(kind model.MeetingKind) string {
	return filepath.Join(s.dir, fmt.Sprintf("current_%s_id.txt", kind))
}

// Load returns the stored id, or 0 when nothing was stored yet
func (s *FileStateStore) Load(kind model.MeetingKind) (int, error) {
	data, err := os.ReadFile(s.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read crawl state: %w", err)
	}

	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse crawl state %s: %w", s.path(kind), err)
	}
	if id < 0 {
		return 0, fmt.Errorf("parse crawl state %s: negative id %d", s.path(kind), id)
	}
	return id, nil
}

// Save overwrites the stored id
func (s *FileStateStore) Save(kind model.MeetingKind, id int) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path(kind), []byte(strconv.Itoa(id)+"\n"), 0644); err != nil {
		return fmt.Errorf("write crawl state: %w", err)
	}
	return nil
}
