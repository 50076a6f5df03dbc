package filter

import "github.com/nextset/crate-builder/internal/models"

// HipHopFilter disambiguates the "Hip Hop" leaf by ancestor context (§4.6).
type HipHopFilter struct{}

// NewHipHopFilter constructs a HipHopFilter.
func NewHipHopFilter() *HipHopFilter { return &HipHopFilter{} }

func (f *HipHopFilter) Identifier() string { return "hip_hop" }

func (f *HipHopFilter) MatchesPlaylist(path []string, name string) bool {
	return name == "Hip Hop"
}

func (f *HipHopFilter) KeepTrack(path []string, name string, t models.Track) bool {
	if hasAncestor(path, "Bass") {
		for g := range t.GenreTags {
			if g != "Hip Hop" && g != "R&B" {
				return true
			}
		}
		return false
	}
	for g := range t.GenreTags {
		if g != "Hip Hop" && g != "R&B" {
			return false
		}
	}
	return true
}
