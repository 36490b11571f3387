package dimacs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseModels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.cnf.models")
	content := "1 -2 3 0\n-1 2 -3 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	models, err := ParseModels(path)
	if err != nil {
		t.Fatalf("ParseModels: %v", err)
	}

	want := [][]bool{
		{true, false, true},
		{false, true, false},
	}
	if len(models) != len(want) {
		t.Fatalf("len(models) = %d, want %d", len(models), len(want))
	}
	for i, m := range models {
		if len(m) != len(want[i]) {
			t.Fatalf("models[%d] = %v, want %v", i, m, want[i])
		}
		for j, v := range m {
			if v != want[i][j] {
				t.Errorf("models[%d][%d] = %v, want %v", i, j, v, want[i][j])
			}
		}
	}
}

func TestParseModels_missingFile(t *testing.T) {
	if _, err := ParseModels(filepath.Join(t.TempDir(), "missing.cnf.models")); err == nil {
		t.Error("ParseModels: want error for missing file")
	}
}
