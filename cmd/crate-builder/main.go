// Command crate-builder runs one playlist-builder pass end to end: load the
// collection, load and validate the spec, run the orchestrator, and persist
// the result. Wiring follows the teacher's main.go almost line for line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/collection"
	"github.com/nextset/crate-builder/internal/collection/memory"
	"github.com/nextset/crate-builder/internal/config"
	"github.com/nextset/crate-builder/internal/filter"
	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/orchestrator"
	"github.com/nextset/crate-builder/internal/specfile"
	"github.com/nextset/crate-builder/internal/storage/mongostore"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting crate-builder")

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if cfg.DryRun {
		logger.Info("running in DRY_RUN mode", zap.String("track_source", cfg.CollectionStoreDSN))
	}

	ctx := context.Background()

	view, closeStore, err := openCollection(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to open collection", zap.Error(err))
		os.Exit(exitCode(err))
	}
	defer closeStore()

	doc, err := specfile.NewLoader(logger).Load(cfg.SpecFilePath, nil)
	if err != nil {
		logger.Error("failed to load spec", zap.Error(err))
		os.Exit(exitCode(err))
	}

	remainder, err := cfg.RemainderPolicy()
	if err != nil {
		logger.Error("invalid remainder policy", zap.Error(err))
		os.Exit(exitCode(err))
	}

	registry := buildFilterRegistry(cfg)

	orch := orchestrator.NewOrchestrator(logger, registry)
	result, err := orch.Build(ctx, view, doc, orchestrator.Config{
		Remainder:                 remainder,
		EnabledFilters:            cfg.EnabledFilters,
		MinTagPlaylistTracks:      cfg.MinTagPlaylistTracks,
		MinCombinerPlaylistTracks: cfg.MinCombinerPlaylistTracks,
		GenreDelimiter:            cfg.GenreDelimiter,
		OtherTagOpenMarker:        cfg.OtherTagOpenMarker,
		OtherTagCloseMarker:       cfg.OtherTagCloseMarker,
	})
	if err != nil {
		logger.Error("build failed", zap.Error(err))
		os.Exit(exitCode(err))
	}

	if err := result.Serialize(cfg.SpecFilePath + ".built"); err != nil {
		logger.Error("failed to serialize collection", zap.Error(err))
		os.Exit(exitCode(err))
	}

	logger.Info("build completed successfully")
}

// buildFilterRegistry registers every stock filter from §4.6; Config's
// EnabledFilters (resolved inside the orchestrator) selects which of these
// actually run on a given build.
func buildFilterRegistry(cfg *config.Config) *filter.Registry {
	registry := filter.NewRegistry()
	registry.Register(filter.NewHipHopFilter())
	registry.Register(filter.NewMinimalDeepTechFilter())
	registry.Register(filter.NewComplexTrackFilter(cfg.ComplexTrackMinTags, cfg.ComplexTrackExcludeTags))
	registry.Register(filter.NewTransitionTrackFilter())
	return registry
}

// openCollection selects a collection.View per cfg.DryRun: a MongoDB-backed
// store for a real run, or an in-memory one seeded from a local JSON track
// dump for -dry-run/offline use (§2's "[ADD] Collection storage"). The
// returned func closes whatever connection was opened, and is a no-op for
// the in-memory case.
func openCollection(ctx context.Context, logger *zap.Logger, cfg *config.Config) (collection.View, func(), error) {
	if cfg.DryRun {
		tracks, err := loadTracksFromFile(cfg.CollectionStoreDSN)
		if err != nil {
			return nil, nil, &collection.DeserializationError{Err: err}
		}
		return memory.New(tracks), func() {}, nil
	}

	store, err := mongostore.New(ctx, logger, cfg.CollectionStoreDSN, cfg.CollectionStoreDB)
	if err != nil {
		return nil, nil, &collection.DeserializationError{Err: err}
	}
	if err := store.Ping(ctx); err != nil {
		return nil, nil, &collection.DeserializationError{Err: err}
	}
	return store, func() { _ = store.Close(ctx) }, nil
}

func loadTracksFromFile(path string) ([]models.Track, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tracks []models.Track
	if err := json.Unmarshal(raw, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// exitCode maps the §7 error taxonomy (plus collection.DeserializationError)
// onto the literal §6 exit codes.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var specErr *models.SpecError
	var exprErr *models.ExpressionError
	var unknownErr *models.UnknownPlaylist
	var deserErr *collection.DeserializationError

	switch {
	case errors.As(err, &specErr):
		return 2
	case errors.As(err, &exprErr):
		return 3
	case errors.As(err, &unknownErr):
		return 4
	case errors.As(err, &deserErr):
		return 5
	default:
		return 1
	}
}
