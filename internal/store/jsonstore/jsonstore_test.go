package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Makepad-fr/listbench/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	stats, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("got %d records, want 0", len(stats))
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stats.json")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []model.FetchStats{
		{SizeMB: 1, NumberOfRows: 3400, InflightTime: 40, JSONParseTime: 12, TransformTime: 1, CompletedAt: at},
		{SizeMB: 0.5, NumberOfRows: 1700, JSONParseTime: 6, CompletedAt: at},
	}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
		t.Errorf("Load = %+v, want %+v", got, in)
	}
}

func TestSaveUsesOriginalFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := Save(path, []model.FetchStats{{SizeMB: 1, NumberOfRows: 2}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, _ := os.ReadFile(path)
	for _, key := range []string{`"sizeMb"`, `"numberOfRows"`, `"jsonParseTime"`, `"transformTime"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("missing key %s in %s", key, b)
		}
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.TrimSpace(string(b)) != "[]" {
		t.Errorf("file = %q, want []", b)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt file")
	}
}
