package tagindex

import (
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

// BPMIn returns tracks whose rounded BPM falls in [lo, hi] inclusive
// (§4.1, §4.3's numeric-selector semantics).
func (ti *TagIndex) BPMIn(lo, hi int) models.TrackSet {
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if r := t.RoundedBPM(); r >= lo && r <= hi {
			out[id] = struct{}{}
		}
	}
	return out
}

// RatingIn returns tracks whose rating falls in [lo, hi] inclusive.
func (ti *TagIndex) RatingIn(lo, hi int) models.TrackSet {
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if t.Rating >= lo && t.Rating <= hi {
			out[id] = struct{}{}
		}
	}
	return out
}

// YearIn returns tracks whose year falls in [lo, hi] inclusive.
func (ti *TagIndex) YearIn(lo, hi int) models.TrackSet {
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if t.Year >= lo && t.Year <= hi {
			out[id] = struct{}{}
		}
	}
	return out
}

// DateMatches returns tracks whose DateAdded satisfies spec (§4.1, §4.3).
func (ti *TagIndex) DateMatches(spec models.DateSpec) models.TrackSet {
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if spec.Matches(t.DateAdded) {
			out[id] = struct{}{}
		}
	}
	return out
}

// ArtistGlob returns tracks with at least one artist matching pattern.
func (ti *TagIndex) ArtistGlob(pattern string) (models.TrackSet, error) {
	match, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		for _, artist := range t.Artists {
			if match(artist) {
				out[id] = struct{}{}
				break
			}
		}
	}
	return out, nil
}

// LabelGlob returns tracks whose label matches pattern.
func (ti *TagIndex) LabelGlob(pattern string) (models.TrackSet, error) {
	match, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if match(t.Label) {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// CommentGlob returns tracks whose full comment text matches pattern.
func (ti *TagIndex) CommentGlob(pattern string) (models.TrackSet, error) {
	match, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if match(t.Comment) {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// KeyGlob returns tracks whose musical key matches pattern.
func (ti *TagIndex) KeyGlob(pattern string) (models.TrackSet, error) {
	match, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	out := make(models.TrackSet)
	for id, t := range ti.tracksByID {
		if match(t.Key) {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// compileGlob implements the matching rule shared by artist/label/comment/
// key selectors (§4.1, §4.3): case-insensitive substring match when the
// pattern is flanked by '*' on both sides, exact case-insensitive equality
// otherwise. A '*' anywhere else in the pattern is malformed.
func compileGlob(pattern string) (func(value string) bool, error) {
	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*")
	inner := pattern

	switch {
	case leading && trailing:
		if len(pattern) < 2 {
			return nil, &models.PatternError{Pattern: pattern, Message: "empty wildcard pattern"}
		}
		inner = pattern[1 : len(pattern)-1]
		if strings.Contains(inner, "*") {
			return nil, &models.PatternError{Pattern: pattern, Message: "wildcard only permitted at both ends of the pattern"}
		}
		needle := strings.ToLower(inner)
		return func(value string) bool {
			return strings.Contains(strings.ToLower(value), needle)
		}, nil
	case leading != trailing:
		return nil, &models.PatternError{Pattern: pattern, Message: "wildcard must appear at both ends or not at all"}
	case strings.Contains(inner, "*"):
		return nil, &models.PatternError{Pattern: pattern, Message: "wildcard must appear at both ends or not at all"}
	default:
		exact := strings.ToLower(pattern)
		return func(value string) bool {
			return strings.ToLower(value) == exact
		}, nil
	}
}
