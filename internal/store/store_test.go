package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_PutGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := s.Put("sample", record{Name: "paris", Count: 3}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	var got record
	if err := s.Get("sample", &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "paris" || got.Count != 3 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	var out map[string]any
	if err := s.Get("nope", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CorruptFileReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	var out map[string]any
	if err := s.Get("broken", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt payload, got %v", err)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := s.Put("gone", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}

	var out map[string]string
	if err := s.Get("gone", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_OverwriteReplacesWholeDocument(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := s.Put("doc", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Put("doc", map[string]string{"c": "3"}); err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}

	var got map[string]string
	if err := s.Get("doc", &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got) != 1 || got["c"] != "3" {
		t.Fatalf("expected replacement document, got %v", got)
	}
}
