package models

import "sort"

// TrackSet is a set of track identifiers, used throughout the builder for
// tag lookups, selector results, and AST evaluation (§4.1, §4.4).
type TrackSet map[TrackID]struct{}

// NewTrackSet builds a TrackSet from a slice of IDs.
func NewTrackSet(ids ...TrackID) TrackSet {
	s := make(TrackSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s TrackSet) Add(id TrackID) { s[id] = struct{}{} }

func (s TrackSet) Contains(id TrackID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the set's members in ascending TrackID order, the
// determinism guarantee required by §4.4, §5, and §8's first property.
func (s TrackSet) Sorted() []TrackID {
	ids := make([]TrackID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Union returns the union of sets, per the Or(l,r) evaluation rule (§4.4).
func Union(sets ...TrackSet) TrackSet {
	out := make(TrackSet)
	for _, s := range sets {
		for id := range s {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersect returns a ∩ b, per the And(l,r) evaluation rule (§4.4).
func Intersect(a, b TrackSet) TrackSet {
	out := make(TrackSet)
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Diff returns a \ b, per the Diff(l,r) evaluation rule (§4.4).
func Diff(a, b TrackSet) TrackSet {
	out := make(TrackSet)
	for id := range a {
		if _, ok := b[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}
