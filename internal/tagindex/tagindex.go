// Package tagindex builds and serves the reverse indexes described in spec
// §4.1: tag -> track set, playlist name -> track set, and the lazy
// attribute predicates (BPM, rating, year, date, artist/label/comment/key
// glob).
package tagindex

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/models"
)

// TagIndex is constructed once per build and is safe to read concurrently.
// The playlist-name relation is the one mutable part of its lifecycle: it
// is populated incrementally while the tag-playlist tree is built (§4.2)
// and is expected to be frozen (no further writes) before combiner
// evaluation begins (§3, §5).
type TagIndex struct {
	log *zap.Logger

	tagToTracks map[string]models.TrackSet
	allTagNames []string

	tracksByID map[models.TrackID]models.Track

	mu        sync.RWMutex
	playlists map[string]models.TrackSet

	now func() time.Time
}

// Option customizes TagIndex construction. Tests use WithClock to pin
// "now" for relative date selectors.
type Option func(*TagIndex)

// WithClock overrides the function TagIndex uses to resolve "now" when
// evaluating relative date selectors. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(ti *TagIndex) { ti.now = now }
}

// Build constructs a TagIndex from a slice of tracks (§4.1). Genre and
// other tags share one namespace; on a name collision the two sets are
// unioned, never an error.
func Build(log *zap.Logger, tracks []models.Track, opts ...Option) *TagIndex {
	ti := &TagIndex{
		log:         log,
		tagToTracks: make(map[string]models.TrackSet),
		tracksByID:  make(map[models.TrackID]models.Track, len(tracks)),
		playlists:   make(map[string]models.TrackSet),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(ti)
	}

	for _, t := range tracks {
		ti.tracksByID[t.ID] = t
		for tag := range t.GenreTags {
			ti.addTag(tag, t.ID)
		}
		for tag := range t.OtherTags {
			ti.addTag(tag, t.ID)
		}
	}

	names := make([]string, 0, len(ti.tagToTracks))
	for name := range ti.tagToTracks {
		names = append(names, name)
	}
	sort.Strings(names)
	ti.allTagNames = names

	if ti.log != nil {
		ti.log.Debug("tag index built", zap.Int("tracks", len(tracks)), zap.Int("tags", len(names)))
	}

	return ti
}

func (ti *TagIndex) addTag(tag string, id models.TrackID) {
	set, ok := ti.tagToTracks[tag]
	if !ok {
		set = make(models.TrackSet)
		ti.tagToTracks[tag] = set
	}
	set.Add(id)
}

// Tag returns the track set for an exact, case-sensitive tag name. Unknown
// tags return the empty set, never an error (§4.1, §7).
func (ti *TagIndex) Tag(name string) models.TrackSet {
	if set, ok := ti.tagToTracks[name]; ok {
		return set
	}
	return models.TrackSet{}
}

// AllTagNames returns every tag name present in the collection, sorted.
func (ti *TagIndex) AllTagNames() []string {
	out := make([]string, len(ti.allTagNames))
	copy(out, ti.allTagNames)
	return out
}

// TagsMatchingSubstring returns the union of Tag(t) over every tag t whose
// lowercased name contains the lowercased pattern (wildcard tag literals
// reduce to this, §4.3, §4.4; {field:*pattern*} selectors use compileGlob).
func (ti *TagIndex) TagsMatchingSubstring(loweredPattern string) models.TrackSet {
	sets := make([]models.TrackSet, 0)
	for name, set := range ti.tagToTracks {
		if strings.Contains(strings.ToLower(name), loweredPattern) {
			sets = append(sets, set)
		}
	}
	return models.Union(sets...)
}

// RegisterPlaylist records the track set produced for a playlist leaf so
// later {playlist:X} selectors can resolve it (§4.1, §4.2). Re-registering
// the same name overwrites the previous set; duplicate leaf names are
// permitted by §3 and the most recently built one wins, per §3's relation
// description ("the most recently materialized playlist X").
func (ti *TagIndex) RegisterPlaylist(name string, ids []models.TrackID) {
	set := models.NewTrackSet(ids...)
	ti.mu.Lock()
	ti.playlists[name] = set
	ti.mu.Unlock()
}

// Playlist resolves a previously registered playlist name, failing with
// UnknownPlaylist if it has not been materialized yet (§4.1).
func (ti *TagIndex) Playlist(name string) (models.TrackSet, error) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	set, ok := ti.playlists[name]
	if !ok {
		return nil, &models.UnknownPlaylist{Name: name}
	}
	return set, nil
}

// Track looks up a single track by ID; used by filter.Apply when attribute
// access is needed outside a predicate scan.
func (ti *TagIndex) Track(id models.TrackID) (models.Track, bool) {
	t, ok := ti.tracksByID[id]
	return t, ok
}

// Now returns the instant relative-date selectors are anchored to.
func (ti *TagIndex) Now() time.Time { return ti.now() }
