// Package filter implements the pluggable post-hoc filter architecture
// (§4.6): a named registry of predicate pairs applied during a final
// traversal of the built playlist trees.
package filter

import (
	"github.com/nextset/crate-builder/internal/models"
)

// Filter is a pair of predicates applied to a leaf during the final
// traversal (§4.6). Unlike the spec's abstract `keep_track(track)` shape,
// KeepTrack also receives the leaf's ancestor path and own name: several
// stock filters (HipHopFilter, MinimalDeepTechFilter) change behavior based
// on an ancestor folder's name, so the path has to reach the track-level
// decision, not just the leaf-match decision. See DESIGN.md's Open Question
// entry for this package.
type Filter interface {
	// Identifier is the name used to enable this filter via config (§6's
	// enabled_filters list).
	Identifier() string
	// MatchesPlaylist reports whether this filter applies to a leaf, given
	// its ancestor folder-name chain (outermost first) and its own name.
	MatchesPlaylist(path []string, name string) bool
	// KeepTrack reports whether t should be retained in a leaf this filter
	// matched.
	KeepTrack(path []string, name string, t models.Track) bool
}

// Registry holds every filter known to the build, keyed by identifier, and
// resolves the configured enabled_filters ordering into concrete Filters.
type Registry struct {
	byName map[string]Filter
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Filter)}
}

// Register adds f to the registry under its own Identifier.
func (r *Registry) Register(f Filter) {
	r.byName[f.Identifier()] = f
}

// Select resolves an ordered list of filter identifiers (§6's
// enabled_filters) into the concrete Filters, preserving order. An unknown
// identifier raises ConfigError.
func (r *Registry) Select(names []string) ([]Filter, error) {
	out := make([]Filter, 0, len(names))
	for _, name := range names {
		f, ok := r.byName[name]
		if !ok {
			return nil, &models.ConfigError{Field: "enabled_filters", Message: "unknown filter: " + name}
		}
		out = append(out, f)
	}
	return out, nil
}
