package playlist

import (
	"testing"

	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

func track(id string, genres ...string) models.Track {
	gt := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		gt[g] = struct{}{}
	}
	return models.Track{ID: models.TrackID(id), GenreTags: gt, OtherTags: map[string]struct{}{}}
}

func leafNode(tag string) *models.SpecNode {
	return &models.SpecNode{IsBareLeaf: true, BareValue: tag}
}

func folderNode(name string, children ...*models.SpecNode) *models.SpecNode {
	return &models.SpecNode{IsFolder: true, Name: name, Playlists: children}
}

// TestScenarioS1 mirrors spec §8's first end-to-end scenario: a flat root
// with two tag leaves and no All-aggregation since Root is top-level.
func TestScenarioS1(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		track("T1", "House"),
		track("T2", "Techno"),
		track("T3", "House", "Techno"),
	})
	spec := folderNode("Root", leafNode("House"), leafNode("Techno"))

	b := NewTagPlaylistBuilder(zap.NewNop(), idx, RemainderFolder)
	out, err := b.Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected at least the root folder")
	}
	root := out[0].(*models.Folder)
	if root.Name() != "Root" {
		t.Fatalf("expected Root, got %s", root.Name())
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children (no All Root at top level), got %d: %v", len(root.Children), names(root.Children))
	}
	house := root.Children[0].(*models.Leaf)
	assertIDs(t, house.Tracks, "T1", "T3")
	techno := root.Children[1].(*models.Leaf)
	assertIDs(t, techno.Tracks, "T2", "T3")
}

// TestScenarioS2 mirrors spec §8's second scenario: a nested folder gets an
// implicit "All Styles" aggregation leaf appended last.
func TestScenarioS2(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		track("T1", "House"),
		track("T2", "Techno"),
		track("T3", "House", "Techno"),
	})
	spec := folderNode("Root", folderNode("Styles", leafNode("House"), leafNode("Techno")))

	b := NewTagPlaylistBuilder(zap.NewNop(), idx, RemainderNone)
	out, err := b.Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := out[0].(*models.Folder)
	styles := root.Children[0].(*models.Folder)
	if styles.Name() != "Styles" {
		t.Fatalf("expected Styles folder, got %s", styles.Name())
	}
	if len(styles.Children) != 3 {
		t.Fatalf("expected House, Techno, All Styles; got %v", names(styles.Children))
	}
	all := styles.Children[2].(*models.Leaf)
	if all.Name() != "All Styles" {
		t.Fatalf("expected All Styles last, got %s", all.Name())
	}
	assertIDs(t, all.Tracks, "T1", "T2", "T3")
}

func TestIgnoreFolderExcludesFromRemainder(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		track("T1", "House"),
		track("T2", "Ambient"),
	})
	spec := folderNode("Root",
		leafNode("House"),
		folderNode("_ignore", leafNode("Ambient")),
	)

	b := NewTagPlaylistBuilder(zap.NewNop(), idx, RemainderFolder)
	out, err := b.Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := out[0].(*models.Folder)
	if len(root.Children) != 1 {
		t.Fatalf("expected _ignore to be excluded from output, got %v", names(root.Children))
	}
	// Ambient is ignored, not remainder, so no "Unused Tags" folder appears.
	if len(out) != 1 {
		t.Fatalf("expected no remainder folder since the only unused tag is ignored, got %v", out)
	}
}

func TestRemainderFolderPolicy(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		track("T1", "House"),
		track("T2", "Ambient"),
	})
	spec := folderNode("Root", leafNode("House"))

	b := NewTagPlaylistBuilder(zap.NewNop(), idx, RemainderFolder)
	out, err := b.Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected root + Unused Tags folder, got %d", len(out))
	}
	unused := out[1].(*models.Folder)
	if unused.Name() != unusedTagsName {
		t.Fatalf("expected %s, got %s", unusedTagsName, unused.Name())
	}
	if len(unused.Children) != 2 {
		t.Fatalf("expected Ambient + All Unused Tags, got %v", names(unused.Children))
	}
}

func TestRemainderPlaylistPolicy(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		track("T1", "House"),
		track("T2", "Ambient"),
	})
	spec := folderNode("Root", leafNode("House"))

	b := NewTagPlaylistBuilder(zap.NewNop(), idx, RemainderPlaylist)
	out, err := b.Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected root + Unused Tags leaf, got %d", len(out))
	}
	leaf, ok := out[1].(*models.Leaf)
	if !ok {
		t.Fatalf("expected a bare Leaf under remainder=playlist, got %T", out[1])
	}
	assertIDs(t, leaf.Tracks, "T2")
}

func TestParseRemainderPolicyInvalid(t *testing.T) {
	if _, err := ParseRemainderPolicy("bogus"); err == nil {
		t.Fatal("expected ConfigError for an unknown remainder policy")
	}
}

func names(ps []models.Playlist) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func assertIDs(t *testing.T, got []models.TrackID, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if string(got[i]) != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
