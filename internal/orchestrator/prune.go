package orchestrator

import "github.com/nextset/crate-builder/internal/models"

// pruneTree drops leaves below minTracks and any folder left with no
// surviving children, per §4.7 step 6. It returns nil when node itself
// should be dropped.
func pruneTree(node models.Playlist, minTracks int) models.Playlist {
	switch n := node.(type) {
	case *models.Leaf:
		if len(n.Tracks) < minTracks {
			return nil
		}
		return n
	case *models.Folder:
		kept := make([]models.Playlist, 0, len(n.Children))
		for _, child := range n.Children {
			if pruned := pruneTree(child, minTracks); pruned != nil {
				kept = append(kept, pruned)
			}
		}
		if len(kept) == 0 {
			return nil
		}
		return models.NewFolder(n.FolderName, kept...)
	default:
		return node
	}
}

// pruneForest applies pruneTree across a list of top-level playlists,
// dropping entries that prune away entirely.
func pruneForest(list []models.Playlist, minTracks int) []models.Playlist {
	out := make([]models.Playlist, 0, len(list))
	for _, p := range list {
		if pruned := pruneTree(p, minTracks); pruned != nil {
			out = append(out, pruned)
		}
	}
	return out
}
