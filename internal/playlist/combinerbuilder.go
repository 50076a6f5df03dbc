package playlist

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nextset/crate-builder/internal/expr"
	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

// combinerFanout bounds how many sibling leaves are evaluated concurrently
// within one folder (§5's explicit allowance for parallel leaf evaluation).
const combinerFanout = 8

// CombinerPlaylistBuilder materializes the combiner subtree of a spec into a
// playlist tree (§4.5): a structural mirror of TagPlaylistBuilder with no
// `_ignore`/remainder handling and no implicit "All <folder>" aggregation,
// since the combiner tree is explicitly compositional.
type CombinerPlaylistBuilder struct {
	log *zap.Logger
	idx *tagindex.TagIndex
}

// NewCombinerPlaylistBuilder constructs a CombinerPlaylistBuilder against
// idx, which must already have every tag-playlist leaf registered (§4.2
// step 6) so {playlist:X} selectors resolve.
func NewCombinerPlaylistBuilder(log *zap.Logger, idx *tagindex.TagIndex) *CombinerPlaylistBuilder {
	return &CombinerPlaylistBuilder{log: log, idx: idx}
}

// Build walks the combiner subtree rooted at spec. Sibling leaves within a
// folder are evaluated concurrently (bounded by combinerFanout) since each
// expression is an independent pure read of idx; results are reassembled in
// spec order before returning, so the public contract stays observationally
// sequential per §5.
func (b *CombinerPlaylistBuilder) Build(ctx context.Context, spec *models.SpecNode) (models.Playlist, error) {
	if spec == nil {
		return nil, nil
	}
	folder, err := b.buildFolder(ctx, spec)
	if err != nil {
		return nil, err
	}
	if b.log != nil {
		b.log.Debug("combiner playlist tree built", zap.String("root", folder.Name()))
	}
	return folder, nil
}

func (b *CombinerPlaylistBuilder) buildFolder(ctx context.Context, node *models.SpecNode) (*models.Folder, error) {
	children := make([]models.Playlist, len(node.Playlists))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(combinerFanout)

	for i, child := range node.Playlists {
		i, child := i, child
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if child.IsFolder {
				sub, err := b.buildFolder(gctx, child)
				if err != nil {
					return err
				}
				children[i] = sub
				return nil
			}
			leaf, err := b.buildLeaf(child)
			if err != nil {
				return err
			}
			children[i] = leaf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models.NewFolder(node.Name, children...), nil
}

func (b *CombinerPlaylistBuilder) buildLeaf(node *models.SpecNode) (*models.Leaf, error) {
	expression := node.LeafExpression()
	set, err := expr.Evaluate(b.idx, expression)
	if err != nil {
		return nil, err
	}
	name := node.DisplayName(expression)
	return models.NewLeaf(name, set.Sorted()...), nil
}
