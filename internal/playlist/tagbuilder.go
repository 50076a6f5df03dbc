// Package playlist builds the two playlist trees — the tag tree (§4.2) and
// the combiner tree (§4.5) — from their respective spec subtrees.
package playlist

import (
	"sort"

	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

// RemainderPolicy selects how TagPlaylistBuilder handles tags present in the
// collection but never referenced by the tags spec (§4.2 step 5, §6).
type RemainderPolicy int

const (
	RemainderFolder RemainderPolicy = iota
	RemainderPlaylist
	RemainderNone
)

// ParseRemainderPolicy decodes the §6 config value ("folder" | "playlist" |
// "none") into a RemainderPolicy, raising ConfigError on anything else.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "folder":
		return RemainderFolder, nil
	case "playlist":
		return RemainderPlaylist, nil
	case "none":
		return RemainderNone, nil
	default:
		return 0, &models.ConfigError{Field: "remainder", Message: "must be one of folder, playlist, none; got " + s}
	}
}

const unusedTagsName = "Unused Tags"

// TagPlaylistBuilder materializes the tags subtree of a spec into a
// playlist tree (§4.2). It is a pure function of (spec, TagIndex) to
// Playlist; the only side effect is registering produced leaf names with
// the TagIndex so combiner {playlist:X} selectors can resolve them later.
type TagPlaylistBuilder struct {
	log       *zap.Logger
	idx       *tagindex.TagIndex
	remainder RemainderPolicy
}

// NewTagPlaylistBuilder constructs a TagPlaylistBuilder against idx.
func NewTagPlaylistBuilder(log *zap.Logger, idx *tagindex.TagIndex, remainder RemainderPolicy) *TagPlaylistBuilder {
	return &TagPlaylistBuilder{log: log, idx: idx, remainder: remainder}
}

// Build walks the tags subtree rooted at spec and returns the ordered list
// of top-level playlists it contributes: the built root folder, followed by
// the remainder folder/leaf (if the configured policy produces one),
// appended last per §5's sibling-ordering guarantee.
func (b *TagPlaylistBuilder) Build(spec *models.SpecNode) ([]models.Playlist, error) {
	if spec == nil {
		return nil, nil
	}

	ignored := make(map[string]struct{})
	used := make(map[string]struct{})

	root, _, err := b.buildFolder(spec, true, ignored, used)
	if err != nil {
		return nil, err
	}

	out := []models.Playlist{root}

	remainderTags := b.computeRemainder(ignored, used)
	switch b.remainder {
	case RemainderFolder:
		if len(remainderTags) > 0 {
			out = append(out, b.buildRemainderFolder(remainderTags))
		}
	case RemainderPlaylist:
		if len(remainderTags) > 0 {
			out = append(out, b.buildRemainderLeaf(remainderTags))
		}
	case RemainderNone:
	}

	if b.log != nil {
		b.log.Debug("tag playlist tree built", zap.Int("remainder_tags", len(remainderTags)))
	}
	return out, nil
}

// buildFolder emits the Folder for node (per §4.2 steps 1-4) and returns the
// union of track IDs across every genuine (non-_ignore, non-synthesized)
// descendant leaf, for the caller's own "All <folder>" aggregation.
func (b *TagPlaylistBuilder) buildFolder(node *models.SpecNode, isRoot bool, ignored, used map[string]struct{}) (*models.Folder, models.TrackSet, error) {
	aggregate := make(models.TrackSet)
	children := make([]models.Playlist, 0, len(node.Playlists))

	for _, child := range node.Playlists {
		if child.IsFolder && child.Name == "_ignore" {
			b.collectIgnored(child, ignored)
			continue
		}
		if child.IsFolder {
			childFolder, childSet, err := b.buildFolder(child, false, ignored, used)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, childFolder)
			for id := range childSet {
				aggregate.Add(id)
			}
			continue
		}

		leaf, err := b.buildLeaf(child, used)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, leaf)
		for _, id := range leaf.Tracks {
			aggregate.Add(id)
		}
	}

	name := node.Name
	if !isRoot {
		allName := "All " + name
		ids := aggregate.Sorted()
		children = append(children, models.NewLeaf(allName, ids...))
		b.idx.RegisterPlaylist(allName, ids)
	}
	return models.NewFolder(name, children...), aggregate, nil
}

func (b *TagPlaylistBuilder) buildLeaf(node *models.SpecNode, used map[string]struct{}) (*models.Leaf, error) {
	tagContent := node.LeafTagContent()
	used[tagContent] = struct{}{}

	name := node.DisplayName(tagContent)
	ids := b.idx.Tag(tagContent).Sorted()
	b.idx.RegisterPlaylist(name, ids)
	return models.NewLeaf(name, ids...), nil
}

// collectIgnored walks an `_ignore` folder's contents (and any nested
// folders within it, including nested `_ignore` folders — their effect is
// additive per §4.2 step 4) adding every referenced tag name to ignored.
func (b *TagPlaylistBuilder) collectIgnored(node *models.SpecNode, ignored map[string]struct{}) {
	for _, child := range node.Playlists {
		if child.IsFolder {
			b.collectIgnored(child, ignored)
			continue
		}
		ignored[child.LeafTagContent()] = struct{}{}
	}
}

func (b *TagPlaylistBuilder) computeRemainder(ignored, used map[string]struct{}) []string {
	var remainder []string
	for _, tag := range b.idx.AllTagNames() {
		if _, isUsed := used[tag]; isUsed {
			continue
		}
		if _, isIgnored := ignored[tag]; isIgnored {
			continue
		}
		remainder = append(remainder, tag)
	}
	sort.Strings(remainder)
	return remainder
}

func (b *TagPlaylistBuilder) buildRemainderFolder(tags []string) *models.Folder {
	children := make([]models.Playlist, 0, len(tags)+1)
	aggregate := make(models.TrackSet)
	for _, tag := range tags {
		ids := b.idx.Tag(tag).Sorted()
		b.idx.RegisterPlaylist(tag, ids)
		children = append(children, models.NewLeaf(tag, ids...))
		for _, id := range ids {
			aggregate.Add(id)
		}
	}
	allName := "All " + unusedTagsName
	allIDs := aggregate.Sorted()
	children = append(children, models.NewLeaf(allName, allIDs...))
	b.idx.RegisterPlaylist(allName, allIDs)
	return models.NewFolder(unusedTagsName, children...)
}

func (b *TagPlaylistBuilder) buildRemainderLeaf(tags []string) *models.Leaf {
	aggregate := make(models.TrackSet)
	for _, tag := range tags {
		for _, id := range b.idx.Tag(tag).Sorted() {
			aggregate.Add(id)
		}
	}
	ids := aggregate.Sorted()
	b.idx.RegisterPlaylist(unusedTagsName, ids)
	return models.NewLeaf(unusedTagsName, ids...)
}
