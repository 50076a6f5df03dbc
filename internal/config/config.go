// Package config loads the orchestrator's process-level and §6 domain
// configuration from the environment, following the teacher's
// envconfig.Process pattern.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/playlist"
)

// Config is the full configuration surface consumed by cmd/crate-builder:
// the §6 domain knobs (remainder policy, filters, thresholds, tag markers)
// plus the process-level settings the orchestrator needs to run at all.
type Config struct {
	// Domain config (§6).
	Remainder                 string   `envconfig:"REMAINDER" default:"folder"`
	EnabledFilters            []string `envconfig:"ENABLED_FILTERS"`
	MinTagPlaylistTracks      int      `envconfig:"MIN_TAG_PLAYLIST_TRACKS" default:"0"`
	MinCombinerPlaylistTracks int      `envconfig:"MIN_COMBINER_PLAYLIST_TRACKS" default:"0"`
	OtherTagOpenMarker        string   `envconfig:"OTHER_TAG_OPEN_MARKER" default:"/*"`
	OtherTagCloseMarker       string   `envconfig:"OTHER_TAG_CLOSE_MARKER" default:"*/"`
	GenreDelimiter            string   `envconfig:"GENRE_DELIMITER" default:"/"`

	// ComplexTrackFilter-specific knobs (§4.6).
	ComplexTrackMinTags     int      `envconfig:"COMPLEX_TRACK_MIN_TAGS" default:"3"`
	ComplexTrackExcludeTags []string `envconfig:"COMPLEX_TRACK_EXCLUDE_TAGS"`

	// Process-level settings.
	SpecFilePath       string `envconfig:"SPEC_FILE_PATH" required:"true"`
	CollectionStoreDSN string `envconfig:"COLLECTION_STORE_DSN"`
	CollectionStoreDB  string `envconfig:"COLLECTION_STORE_DATABASE"`
	DryRun             bool   `envconfig:"DRY_RUN" default:"false"`
}

// NewConfig loads Config from the environment.
func NewConfig() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, &models.ConfigError{Field: "env", Message: err.Error()}
	}
	if cfg.MinTagPlaylistTracks < 0 {
		return nil, &models.ConfigError{Field: "min_tag_playlist_tracks", Message: "must be >= 0"}
	}
	if cfg.MinCombinerPlaylistTracks < 0 {
		return nil, &models.ConfigError{Field: "min_combiner_playlist_tracks", Message: "must be >= 0"}
	}
	return cfg, nil
}

// RemainderPolicy decodes the Remainder field into a playlist.RemainderPolicy.
func (c *Config) RemainderPolicy() (playlist.RemainderPolicy, error) {
	return playlist.ParseRemainderPolicy(c.Remainder)
}
