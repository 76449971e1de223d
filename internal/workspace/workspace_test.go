package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResumePath(t *testing.T) {
	got := ResumePath(
		"geojson/Paranaque/Paranaque_Geographic_Data_no_amenity.geojson",
		"_no_amenity.geojson", "_annotated.geojson")
	want := "geojson/Paranaque/Paranaque_Geographic_Data_annotated.geojson"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResumePathWithoutSuffixIsUnchanged(t *testing.T) {
	got := ResumePath("some/other.geojson", "_no_amenity.geojson", "_annotated.geojson")
	if got != "some/other.geojson" {
		t.Errorf("expected unchanged path, got %q", got)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, dir)

	ws, err := New("/somewhere/else")
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}
	if ws.Root() != dir {
		t.Errorf("expected env root %q, got %q", dir, ws.Root())
	}
}

func TestCitiesAssignedOrderAndMissing(t *testing.T) {
	root := t.TempDir()
	for _, city := range []string{"Pasay", "Makati"} {
		if err := os.Mkdir(filepath.Join(root, city), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	ws, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	cities, missing, err := ws.Cities([]string{"Pasay", "Taguig", "Makati"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cities) != 2 || cities[0] != "Pasay" || cities[1] != "Makati" {
		t.Errorf("expected assigned order preserved, got %v", cities)
	}
	if len(missing) != 1 || missing[0] != "Taguig" {
		t.Errorf("expected Taguig reported missing, got %v", missing)
	}
}

func TestCitiesUnassignedIsSorted(t *testing.T) {
	root := t.TempDir()
	for _, city := range []string{"Valenzuela", "Makati", "Pasay"} {
		if err := os.Mkdir(filepath.Join(root, city), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A stray file is not a city.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	cities, _, err := ws.Cities(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Makati", "Pasay", "Valenzuela"}
	if len(cities) != len(want) {
		t.Fatalf("expected %v, got %v", want, cities)
	}
	for i := range want {
		if cities[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], cities[i])
		}
	}
}

func TestFindDataset(t *testing.T) {
	root := t.TempDir()
	cityDir := filepath.Join(root, "Paranaque")
	if err := os.Mkdir(cityDir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(cityDir, "Paranaque_Geographic_Data_no_amenity.geojson")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ws.FindDataset("Paranaque", "_no_amenity.geojson")
	if err != nil {
		t.Fatal(err)
	}
	if got != file {
		t.Errorf("expected %q, got %q", file, got)
	}

	got, err = ws.FindDataset("Paranaque", "_annotated.geojson")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no match, got %q", got)
	}
}
