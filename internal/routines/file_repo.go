package routines

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Repository abstracts the durable document. The whole document is read and
// rewritten wholesale; there is no partial update.
type Repository interface {
	Load() (Document, error)
	Save(doc Document) error
}

type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &FileRepository{path: path}, nil
}

// Load reads the whole document. Any read or decode failure yields an empty
// document: a corrupt store degrades to data loss, never to service failure.
func (r *FileRepository) Load() (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return Document{}, nil
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, nil
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (r *FileRepository) Save(doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open write: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
