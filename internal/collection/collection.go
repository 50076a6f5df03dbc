// Package collection defines the CollectionView boundary the core consumes
// (spec §6). The core never imports a concrete implementation; cmd/ wires
// one in based on config.
package collection

import "github.com/nextset/crate-builder/internal/models"

// View is the read/append surface the Playlist Builder core requires from a
// deserialized collection. Implementations live outside the core — an
// in-memory one for tests (internal/collection/memory) and a MongoDB-backed
// one for the real CLI (internal/storage/mongostore).
type View interface {
	// Tracks returns every track in the collection. The core treats the
	// collection as read-only for the duration of a build (§5).
	Tracks() ([]models.Track, error)

	// AppendPlaylist attaches a built playlist (folder or leaf) as a
	// top-level child of the collection's playlist roots.
	AppendPlaylist(p models.Playlist) error

	// Serialize writes the current state to the implementation-defined
	// destination named by path. The core never calls this directly; it is
	// invoked by the orchestrator's caller once a build completes.
	Serialize(path string) error
}
