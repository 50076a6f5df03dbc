// Package orchestrator drives the end-to-end build described in §4.7:
// read collection tracks -> build tag index -> build tag tree -> build combiner tree ->
// apply filters -> prune -> attach both trees to the collection.
package orchestrator

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/collection"
	"github.com/nextset/crate-builder/internal/filter"
	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/playlist"
	"github.com/nextset/crate-builder/internal/tagindex"
)

// rootPlaylistName is the reserved folder both trees are attached under
// (§2, §4.7 step 7).
const rootPlaylistName = "PLAYLIST_BUILDER"

// Config is the §6 domain configuration surface the orchestrator consumes
// for one build.
type Config struct {
	Remainder                 playlist.RemainderPolicy
	EnabledFilters            []string
	MinTagPlaylistTracks      int
	MinCombinerPlaylistTracks int
	GenreDelimiter            string
	OtherTagOpenMarker        string
	OtherTagCloseMarker       string
}

// Orchestrator drives one build given a collection, a spec, and a Config.
type Orchestrator struct {
	log      *zap.Logger
	registry *filter.Registry
}

// NewOrchestrator constructs an Orchestrator. registry should already have
// every filter the deployment wants to offer registered (§4.6); Config's
// EnabledFilters selects which of them run on a given build.
func NewOrchestrator(log *zap.Logger, registry *filter.Registry) *Orchestrator {
	return &Orchestrator{log: log, registry: registry}
}

// Build runs the full pipeline and appends the resulting tree to view,
// returning view itself per §6's build(collection, spec, filter_config) ->
// collection contract. Every error is logged once, at this boundary, with
// zap.Error(err), then returned — never both logged and re-wrapped (§7).
func (o *Orchestrator) Build(ctx context.Context, view collection.View, spec *models.SpecDocument, cfg Config) (collection.View, error) {
	buildID, err := uuid.NewV4()
	if err != nil {
		o.log.Error("failed to generate build id", zap.Error(err))
		return nil, err
	}
	log := o.log.With(zap.String("build_id", buildID.String()))

	rawTracks, err := view.Tracks()
	if err != nil {
		wrapped := &collection.DeserializationError{Err: err}
		log.Error("failed to read collection tracks", zap.Error(wrapped))
		return nil, wrapped
	}
	tracks := ingestTracks(rawTracks, cfg)

	idx := tagindex.Build(log, tracks)

	tagBuilder := playlist.NewTagPlaylistBuilder(log, idx, cfg.Remainder)
	tagPlaylists, err := tagBuilder.Build(spec.Tags)
	if err != nil {
		log.Error("failed to build tag playlist tree", zap.Error(err))
		return nil, err
	}

	combinerBuilder := playlist.NewCombinerPlaylistBuilder(log, idx)
	combinerTree, err := combinerBuilder.Build(ctx, spec.Combiner)
	if err != nil {
		log.Error("failed to build combiner playlist tree", zap.Error(err))
		return nil, err
	}

	filters, err := o.registry.Select(cfg.EnabledFilters)
	if err != nil {
		log.Error("failed to resolve enabled filters", zap.Error(err))
		return nil, err
	}

	filteredTagPlaylists := make([]models.Playlist, 0, len(tagPlaylists))
	for _, p := range tagPlaylists {
		filteredTagPlaylists = append(filteredTagPlaylists, filter.Apply(idx, filters, p))
	}
	var filteredCombiner models.Playlist
	if combinerTree != nil {
		filteredCombiner = filter.Apply(idx, filters, combinerTree)
	}

	prunedTagPlaylists := pruneForest(filteredTagPlaylists, cfg.MinTagPlaylistTracks)
	var prunedCombiner models.Playlist
	if filteredCombiner != nil {
		prunedCombiner = pruneTree(filteredCombiner, cfg.MinCombinerPlaylistTracks)
	}

	children := make([]models.Playlist, 0, len(prunedTagPlaylists)+1)
	children = append(children, prunedTagPlaylists...)
	if prunedCombiner != nil {
		children = append(children, prunedCombiner)
	}

	result := models.NewFolder(rootPlaylistName, children...)
	if err := view.AppendPlaylist(result); err != nil {
		log.Error("failed to append result tree to collection", zap.Error(err))
		return nil, err
	}

	log.Info("build completed", zap.Int("tracks", len(tracks)), zap.Int("playlists", len(children)))
	return view, nil
}

// ingestTracks derives GenreTags/OtherTags from each track's raw fields
// using the configured delimiter and markers, the boundary decided for §3's
// genre_tags/other_tags attributes (see DESIGN.md).
func ingestTracks(raw []models.Track, cfg Config) []models.Track {
	out := make([]models.Track, len(raw))
	for i, t := range raw {
		t.GenreTags = models.ParseGenreTags(t.RawGenre, cfg.GenreDelimiter)
		t.OtherTags = models.ParseOtherTags(t.Comment, cfg.OtherTagOpenMarker, cfg.OtherTagCloseMarker)
		out[i] = t
	}
	return out
}
