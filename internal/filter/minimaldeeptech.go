package filter

import (
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

const minimalDeepTechLeaf = "Minimal Deep Tech"

// MinimalDeepTechFilter disambiguates the "Minimal Deep Tech" leaf by
// ancestor genre family (§4.6).
type MinimalDeepTechFilter struct{}

// NewMinimalDeepTechFilter constructs a MinimalDeepTechFilter.
func NewMinimalDeepTechFilter() *MinimalDeepTechFilter { return &MinimalDeepTechFilter{} }

func (f *MinimalDeepTechFilter) Identifier() string { return "minimal_deep_tech" }

func (f *MinimalDeepTechFilter) MatchesPlaylist(path []string, name string) bool {
	return name == minimalDeepTechLeaf
}

// KeepTrack scans OtherTags only, matching ComplexTrackFilter's reading of
// "other tag" as the other_tags attribute rather than the genre/other union.
func (f *MinimalDeepTechFilter) KeepTrack(path []string, name string, t models.Track) bool {
	var required string
	switch {
	case hasAncestor(path, "Techno"):
		required = "techno"
	case hasAncestor(path, "House"):
		required = "house"
	default:
		return true
	}
	for tag := range t.OtherTags {
		if tag == minimalDeepTechLeaf {
			continue
		}
		if strings.Contains(strings.ToLower(tag), required) {
			return true
		}
	}
	return false
}
