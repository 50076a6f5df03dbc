package filter

import (
	"testing"

	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

func newTrack(id string, genres []string, other []string, comment string) models.Track {
	gt := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		gt[g] = struct{}{}
	}
	ot := make(map[string]struct{}, len(other))
	for _, o := range other {
		ot[o] = struct{}{}
	}
	return models.Track{ID: models.TrackID(id), GenreTags: gt, OtherTags: ot, Comment: comment}
}

func TestHipHopFilterWithoutBassAncestor(t *testing.T) {
	f := NewHipHopFilter()
	pure := newTrack("T1", []string{"Hip Hop"}, nil, "")
	mixed := newTrack("T2", []string{"Hip Hop", "House"}, nil, "")

	if !f.KeepTrack(nil, "Hip Hop", pure) {
		t.Error("expected pure Hip Hop track to be kept")
	}
	if f.KeepTrack(nil, "Hip Hop", mixed) {
		t.Error("expected track with a non Hip-Hop/R&B genre to be dropped")
	}
}

func TestHipHopFilterWithBassAncestor(t *testing.T) {
	f := NewHipHopFilter()
	path := []string{"Root", "Bass"}
	pure := newTrack("T1", []string{"Hip Hop"}, nil, "")
	mixed := newTrack("T2", []string{"Hip Hop", "House"}, nil, "")

	if f.KeepTrack(path, "Hip Hop", pure) {
		t.Error("expected pure Hip Hop track to be dropped under Bass ancestor")
	}
	if !f.KeepTrack(path, "Hip Hop", mixed) {
		t.Error("expected track with House genre to be kept under Bass ancestor")
	}
}

func TestMinimalDeepTechFilterUnderTechno(t *testing.T) {
	f := NewMinimalDeepTechFilter()
	path := []string{"Root", "Techno"}
	withTechno := newTrack("T1", []string{minimalDeepTechLeaf}, []string{"Dub Techno"}, "")
	withoutTechno := newTrack("T2", []string{minimalDeepTechLeaf}, []string{"Ambient"}, "")

	if !f.KeepTrack(path, minimalDeepTechLeaf, withTechno) {
		t.Error("expected track with another techno tag to be kept")
	}
	if f.KeepTrack(path, minimalDeepTechLeaf, withoutTechno) {
		t.Error("expected track without another techno tag to be dropped")
	}
}

func TestMinimalDeepTechFilterNoRelevantAncestor(t *testing.T) {
	f := NewMinimalDeepTechFilter()
	track := newTrack("T1", []string{minimalDeepTechLeaf}, nil, "")
	if !f.KeepTrack(nil, minimalDeepTechLeaf, track) {
		t.Error("expected no restriction without a Techno/House ancestor")
	}
}

func TestComplexTrackFilter(t *testing.T) {
	f := NewComplexTrackFilter(2, []string{"Explicit"})
	rich := newTrack("T1", nil, []string{"Dark", "Rolling", "Explicit"}, "")
	sparse := newTrack("T2", nil, []string{"Dark", "Explicit"}, "")

	if !f.MatchesPlaylist([]string{"Complex Tracks"}, "Leaf") {
		t.Error("expected ancestor-based match on 'Complex'")
	}
	if !f.KeepTrack(nil, "", rich) {
		t.Error("expected rich track to meet the min_tags threshold after exclusion")
	}
	if f.KeepTrack(nil, "", sparse) {
		t.Error("expected sparse track to fall below threshold after exclusion")
	}
}

func TestTransitionTrackFilterGenre(t *testing.T) {
	f := NewTransitionTrackFilter()
	leaf := "Genre Transition [House / Techno]"
	if !f.MatchesPlaylist([]string{"Transitions"}, leaf) {
		t.Fatal("expected match on transition+genre leaf")
	}
	matching := newTrack("T1", nil, nil, "smooth blend /* tag */ [Techno / House]")
	mismatching := newTrack("T2", nil, nil, "[House / Ambient]")

	if !f.KeepTrack(nil, leaf, matching) {
		t.Error("expected matching genre pair (order-independent) to be kept")
	}
	if f.KeepTrack(nil, leaf, mismatching) {
		t.Error("expected mismatched genre pair to be dropped")
	}
}

func TestTransitionTrackFilterTempo(t *testing.T) {
	f := NewTransitionTrackFilter()
	leaf := "Tempo Transition [120 / 128]"
	matching := newTrack("T1", nil, nil, "[128 / 120]")
	mismatching := newTrack("T2", nil, nil, "[120 / 130]")

	if !f.KeepTrack(nil, leaf, matching) {
		t.Error("expected matching tempo pair to be kept")
	}
	if f.KeepTrack(nil, leaf, mismatching) {
		t.Error("expected mismatched tempo pair to be dropped")
	}
}

func TestRegistrySelectUnknownFilter(t *testing.T) {
	r := NewRegistry()
	r.Register(NewHipHopFilter())
	_, err := r.Select([]string{"hip_hop", "nonexistent"})
	if err == nil {
		t.Fatal("expected ConfigError for unknown filter identifier")
	}
}

func TestApplyFiltersLeaf(t *testing.T) {
	idx := tagindex.Build(zap.NewNop(), []models.Track{
		newTrack("T1", []string{"Hip Hop"}, nil, ""),
		newTrack("T2", []string{"Hip Hop", "House"}, nil, ""),
	})
	tree := models.NewFolder("Root",
		models.NewFolder("Bass", models.NewLeaf("Hip Hop", "T1", "T2")),
	)

	out := Apply(idx, []Filter{NewHipHopFilter()}, tree)
	root := out.(*models.Folder)
	bass := root.Children[0].(*models.Folder)
	leaf := bass.Children[0].(*models.Leaf)
	if len(leaf.Tracks) != 1 || leaf.Tracks[0] != "T2" {
		t.Fatalf("expected only T2 to survive under Bass, got %v", leaf.Tracks)
	}
}
