package filter

import "github.com/nextset/crate-builder/internal/models"

// ComplexTrackFilter keeps only tracks carrying enough "other" tags to be
// considered complex (§4.6). minTags and excludeTags come from build
// config; excludeTags is not counted toward the minimum.
type ComplexTrackFilter struct {
	minTags int
	exclude map[string]struct{}
}

// NewComplexTrackFilter constructs a ComplexTrackFilter.
func NewComplexTrackFilter(minTags int, excludeTags []string) *ComplexTrackFilter {
	exclude := make(map[string]struct{}, len(excludeTags))
	for _, tag := range excludeTags {
		exclude[tag] = struct{}{}
	}
	return &ComplexTrackFilter{minTags: minTags, exclude: exclude}
}

func (f *ComplexTrackFilter) Identifier() string { return "complex_track" }

func (f *ComplexTrackFilter) MatchesPlaylist(path []string, name string) bool {
	return containsFold(path, name, "complex")
}

func (f *ComplexTrackFilter) KeepTrack(path []string, name string, t models.Track) bool {
	count := 0
	for tag := range t.OtherTags {
		if _, excluded := f.exclude[tag]; excluded {
			continue
		}
		count++
	}
	return count >= f.minTags
}
