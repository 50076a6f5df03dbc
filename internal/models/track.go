// Package models holds the data types shared by every stage of the
// playlist-builder pipeline: tracks, the playlist tree, and the spec
// documents that drive tree construction.
package models

import "time"

// TrackID identifies a track within a collection. Ordering of TrackIDs
// (lexicographic on the underlying string) is what "ascending by TrackId"
// means throughout the builder — callers that want numeric ordering should
// zero-pad their IDs before handing tracks to the core.
type TrackID string

// Track is the subset of collection metadata the builder cares about. The
// collection serializer (an external collaborator) is responsible for
// populating every field; the core never mutates a Track.
type Track struct {
	ID TrackID

	// RawGenre is the single delimited genre field as the serializer read
	// it (e.g. "House/Techno"); GenreTags is derived from it during
	// ingestion using the configured genre delimiter (§6).
	RawGenre string

	GenreTags map[string]struct{}
	OtherTags map[string]struct{}

	BPM       float64
	Rating    int
	Year      int
	DateAdded time.Time

	Artists []string
	Label   string // empty means absent
	Key     string
	Comment string

	Location string
}

// RoundedBPM rounds BPM to the nearest integer for selector matching (§3,
// §4.3: "140.3 rounds to 140").
func (t Track) RoundedBPM() int {
	if t.BPM >= 0 {
		return int(t.BPM + 0.5)
	}
	return -int(-t.BPM + 0.5)
}

// Tags returns the union of genre and other tags, sharing one namespace for
// lookup purposes as required by §4.1.
func (t Track) Tags() map[string]struct{} {
	out := make(map[string]struct{}, len(t.GenreTags)+len(t.OtherTags))
	for tag := range t.GenreTags {
		out[tag] = struct{}{}
	}
	for tag := range t.OtherTags {
		out[tag] = struct{}{}
	}
	return out
}
