package filter

import (
	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

// Apply walks tree, and for every leaf matched by at least one of filters,
// retains only the tracks for which every matching filter's KeepTrack
// returns true (§4.6). Folders and unmatched leaves pass through
// unchanged; the traversal returns a new tree rather than mutating tree
// in place, matching the rest of the builder's pure-function style. A
// single track's KeepTrack failure never poisons the leaf (§7); it is
// simply excluded.
func Apply(idx *tagindex.TagIndex, filters []Filter, tree models.Playlist) models.Playlist {
	if tree == nil {
		return nil
	}
	return applyNode(idx, filters, nil, tree)
}

func applyNode(idx *tagindex.TagIndex, filters []Filter, path []string, node models.Playlist) models.Playlist {
	switch n := node.(type) {
	case *models.Folder:
		childPath := append(append([]string{}, path...), n.FolderName)
		children := make([]models.Playlist, len(n.Children))
		for i, c := range n.Children {
			children[i] = applyNode(idx, filters, childPath, c)
		}
		return models.NewFolder(n.FolderName, children...)

	case *models.Leaf:
		matching := matchingFilters(filters, path, n.LeafName)
		if len(matching) == 0 {
			return n
		}
		kept := make([]models.TrackID, 0, len(n.Tracks))
		for _, id := range n.Tracks {
			t, ok := idx.Track(id)
			if !ok {
				continue
			}
			if keepsAll(matching, path, n.LeafName, t) {
				kept = append(kept, id)
			}
		}
		return models.NewLeaf(n.LeafName, kept...)

	default:
		return node
	}
}

func matchingFilters(filters []Filter, path []string, name string) []Filter {
	var out []Filter
	for _, f := range filters {
		if f.MatchesPlaylist(path, name) {
			out = append(out, f)
		}
	}
	return out
}

func keepsAll(filters []Filter, path []string, name string, t models.Track) bool {
	for _, f := range filters {
		if !f.KeepTrack(path, name, t) {
			return false
		}
	}
	return true
}
