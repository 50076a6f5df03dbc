package filter

import (
	"strconv"
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

// TransitionTrackFilter keeps tracks whose comment carries a "[ a / b ]"
// transition annotation matching the one encoded in the leaf's own name
// (§4.6). Genre transitions compare string tokens; tempo transitions parse
// both sides as integers. See DESIGN.md's Open Question entry for this
// filter: the spec describes the expected pair only as "for this
// playlist," so the leaf name is taken to carry its own "[ a / b ]"
// annotation as the source of truth.
type TransitionTrackFilter struct{}

// NewTransitionTrackFilter constructs a TransitionTrackFilter.
func NewTransitionTrackFilter() *TransitionTrackFilter { return &TransitionTrackFilter{} }

func (f *TransitionTrackFilter) Identifier() string { return "transition_track" }

func (f *TransitionTrackFilter) MatchesPlaylist(path []string, name string) bool {
	if !containsFold(path, name, "transition") {
		return false
	}
	lower := strings.ToLower(name)
	hasGenre := strings.Contains(lower, "genre")
	hasTempo := strings.Contains(lower, "tempo")
	return hasGenre != hasTempo
}

func (f *TransitionTrackFilter) KeepTrack(path []string, name string, t models.Track) bool {
	expected, ok := bracketAnnotation(name)
	if !ok {
		return true
	}
	actual, ok := bracketAnnotation(t.Comment)
	if !ok {
		return false
	}

	if strings.Contains(strings.ToLower(name), "genre") {
		return sameStringSet(expected, actual)
	}

	expectedInts, ok1 := toInts(expected)
	actualInts, ok2 := toInts(actual)
	if !ok1 || !ok2 {
		return false
	}
	return sameIntSet(expectedInts, actualInts)
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return len(seen) == len(set)
}

func toInts(tokens []string) ([]int, bool) {
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	seen := make(map[int]struct{}, len(b))
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return len(seen) == len(set)
}
