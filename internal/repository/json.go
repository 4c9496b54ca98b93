package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// document is the on-disk layout of the JSON store and of backups.
type document struct {
	MCQs []entities.MCQ `json:"mcqs"`
}

// JSONStore keeps questions in a single JSON file. The file is read once on
// open and rewritten after every successful write.
type JSONStore struct {
	*MemoryStore
	fs   afero.Fs
	path string
}

// NewJSONStore opens the store at path, creating an empty one if the file
// does not exist yet.
func NewJSONStore(fs afero.Fs, path string) (*JSONStore, error) {
	mcqs, err := ReadDocument(fs, path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	s := &JSONStore{
		MemoryStore: NewMemoryStore(mcqs...),
		fs:          fs,
		path:        path,
	}
	s.MemoryStore.commit = func(all []entities.MCQ) error {
		return WriteDocument(s.fs, s.path, all)
	}

	return s, nil
}

// Path returns the file backing the store.
func (s *JSONStore) Path() string {
	return s.path
}

// ReadDocument loads every question stored in the JSON file at path.
func ReadDocument(fs afero.Fs, path string) ([]entities.MCQ, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mcqs JSON: %w", err)
	}

	return doc.MCQs, nil
}

// WriteDocument replaces the file at path with mcqs. It writes to a temporary
// file first so readers never observe a half-written document.
func WriteDocument(fs afero.Fs, path string, mcqs []entities.MCQ) error {
	if mcqs == nil {
		mcqs = []entities.MCQ{}
	}
	data, err := json.MarshalIndent(document{MCQs: mcqs}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mcqs: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, ".mcqs-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
