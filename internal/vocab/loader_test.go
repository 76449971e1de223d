package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingIsEmpty(t *testing.T) {
	lines, err := LoadFile(filepath.Join(t.TempDir(), "amenities.txt"))
	if err != nil {
		t.Fatalf("missing vocabulary file should not error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty result, got %v", lines)
	}
}

func TestLoadFileSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amenities.txt")
	content := "cafe\n\n  \nrestaurant\nconvenience_store\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	want := []string{"cafe", "restaurant", "convenience_store"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestLoadAllAggregates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("cafe\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("cafe\nschool\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Missing third file contributes nothing.
	lines, err := LoadAll([]string{a, b, filepath.Join(dir, "missing.txt")})
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(lines) != 3 {
		t.Errorf("expected duplicates preserved for the reducer, got %v", lines)
	}
}
