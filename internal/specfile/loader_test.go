package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeTempSpec(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp spec: %v", err)
	}
	return path
}

func TestLoadValidSpec(t *testing.T) {
	path := writeTempSpec(t, `
tags:
  name: Root
  playlists:
    - House
    - tag_content: Techno
      name: Techno Classics
combiner:
  name: Combiner
  playlists:
    - "House & Techno"
`)
	doc, err := NewLoader(zap.NewNop()).Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Tags == nil || doc.Tags.Name != "Root" {
		t.Fatalf("expected tags root Root, got %+v", doc.Tags)
	}
	if len(doc.Tags.Playlists) != 2 {
		t.Fatalf("expected 2 tag leaves, got %d", len(doc.Tags.Playlists))
	}
	if doc.Combiner == nil || len(doc.Combiner.Playlists) != 1 {
		t.Fatalf("expected 1 combiner leaf, got %+v", doc.Combiner)
	}
}

func TestLoadTemplatedSpec(t *testing.T) {
	path := writeTempSpec(t, `
tags:
  name: Root
  playlists:
    - {{.TagName}}
`)
	doc, err := NewLoader(zap.NewNop()).Load(path, struct{ TagName string }{TagName: "House"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	leaf := doc.Tags.Playlists[0]
	if leaf.LeafTagContent() != "House" {
		t.Fatalf("expected templated tag House, got %q", leaf.LeafTagContent())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(zap.NewNop()).Load("/nonexistent/spec.yaml", nil)
	if err == nil {
		t.Fatal("expected SpecError for missing file")
	}
}

func TestLoadFolderMissingName(t *testing.T) {
	path := writeTempSpec(t, `
tags:
  playlists:
    - House
`)
	_, err := NewLoader(zap.NewNop()).Load(path, nil)
	if err == nil {
		t.Fatal("expected SpecError for folder missing a name")
	}
}
