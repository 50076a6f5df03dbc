// Package memory provides an in-memory collection.View used by tests and by
// the CLI's -dry-run mode. It performs no I/O of its own; Serialize writes a
// human-readable tree dump, which is the one place this package touches the
// filesystem.
package memory

import (
	"fmt"
	"os"
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

// Collection is a simple slice-backed collection.View.
type Collection struct {
	tracks    []models.Track
	playlists []models.Playlist
}

// New builds a Collection from an already-loaded track slice.
func New(tracks []models.Track) *Collection {
	return &Collection{tracks: tracks}
}

func (c *Collection) Tracks() ([]models.Track, error) {
	return c.tracks, nil
}

func (c *Collection) AppendPlaylist(p models.Playlist) error {
	c.playlists = append(c.playlists, p)
	return nil
}

// Playlists exposes the appended playlists for tests that want to inspect
// the built tree without round-tripping through Serialize.
func (c *Collection) Playlists() []models.Playlist {
	return c.playlists
}

func (c *Collection) Serialize(path string) error {
	var b strings.Builder
	for _, p := range c.playlists {
		writeTree(&b, p, 0)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeTree(b *strings.Builder, p models.Playlist, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := p.(type) {
	case *models.Folder:
		fmt.Fprintf(b, "%s%s/\n", indent, n.FolderName)
		for _, child := range n.Children {
			writeTree(b, child, depth+1)
		}
	case *models.Leaf:
		fmt.Fprintf(b, "%s%s (%d tracks)\n", indent, n.LeafName, len(n.Tracks))
	}
}
