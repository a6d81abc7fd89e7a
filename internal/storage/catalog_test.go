package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockSpec implements ValidatingSpec for testing Catalog
type mockSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, id string, spec *mockSpec) {
	t.Helper()
	asset := Asset[*mockSpec]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       spec,
	}
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-2", &mockSpec{Name: "Second", Value: 2})
	writeAsset(t, tmpDir, "item-1", &mockSpec{Name: "First", Value: 1})

	c, err := LoadCatalog[*mockSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", c.Len(), 2)
	testutil.AssertEqual(t, "sorted ids", c.Ids()[0], Identifier("item-1"))
	testutil.AssertEqual(t, "sorted ids", c.Ids()[1], Identifier("item-2"))

	first := c.Get("item-1")
	if first == nil {
		t.Fatal("expected item-1 to be loaded")
	}
	testutil.AssertEqual(t, "item-1 name", first.Name, "First")
}

func TestLoadCatalog_Empty(t *testing.T) {
	c, err := LoadCatalog[*mockSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "record count", c.Len(), 0)
}

func TestLoadCatalog_NonExistentDirectory(t *testing.T) {
	_, err := LoadCatalog[*mockSpec]("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestLoadCatalog_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(`{invalid json`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadCatalog[*mockSpec](tmpDir)
	testutil.AssertErrorContains(t, err, "parsing bad.json")
}

func TestLoadCatalog_DuplicateId(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockSpec{Name: "First", Value: 1})

	// Same id under a different file name
	asset := Asset[*mockSpec]{Version: 1, Identifier: "item-1", Spec: &mockSpec{Name: "Again"}}
	data, _ := json.Marshal(asset)
	if err := os.WriteFile(filepath.Join(tmpDir, "other.json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadCatalog[*mockSpec](tmpDir)
	testutil.AssertErrorContains(t, err, "duplicate key")
}

func TestLoadCatalog_MissingVersion(t *testing.T) {
	tmpDir := t.TempDir()

	asset := Asset[*mockSpec]{Version: 0, Identifier: "test", Spec: &mockSpec{}}
	data, _ := json.Marshal(asset)
	if err := os.WriteFile(filepath.Join(tmpDir, "test.json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadCatalog[*mockSpec](tmpDir)
	testutil.AssertErrorContains(t, err, "version must be set")
}
