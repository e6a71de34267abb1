package routines

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepositorySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "routines.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	doc := Document{
		"42": {
			Routines: []Routine{{ID: "0", Name: "Сон", Start: 1380, End: 1860}},
			History:  map[string]map[string]bool{"2024-03-10": {"0": true}},
		},
	}
	if err := repo.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec, ok := loaded["42"]
	if !ok {
		t.Fatalf("user missing after reload: %+v", loaded)
	}
	if len(rec.Routines) != 1 || rec.Routines[0].Name != "Сон" || rec.Routines[0].End != 1860 {
		t.Fatalf("unexpected routines: %+v", rec.Routines)
	}
	if !rec.History["2024-03-10"]["0"] {
		t.Fatalf("unexpected history: %+v", rec.History)
	}
}

func TestFileRepositoryLoadEmptyFile(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "routines.json"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	doc, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestFileRepositoryLoadCorruptFileRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routines.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	doc, err := repo.Load()
	if err != nil {
		t.Fatalf("corrupt load should not error: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestFileRepositoryLoadMissingFileRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routines.json")
	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	doc, err := repo.Load()
	if err != nil {
		t.Fatalf("missing load should not error: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}
