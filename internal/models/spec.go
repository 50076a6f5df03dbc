package models

import "gopkg.in/yaml.v3"

// SpecDocument is the top-level shape described in spec §6: two optional
// recursive trees, "tags" and "combiner".
type SpecDocument struct {
	Tags     *SpecNode `yaml:"tags"`
	Combiner *SpecNode `yaml:"combiner"`
}

// SpecNode is one node of either tree. A node unmarshals from one of three
// shapes:
//
//	Folder := { name: String, playlists: [ Node, ... ] }
//	Leaf   := String
//	        | { tag_content: String, name?: String }   # tags tree
//	        | { expression:   String, name?: String }   # combiner tree
//
// Which leaf field applies depends on which tree the node sits in; callers
// (TagPlaylistBuilder vs CombinerPlaylistBuilder) read TagContent or
// Expression respectively. IsFolder and IsBareLeaf distinguish the three
// shapes after decoding.
type SpecNode struct {
	Name       string
	Playlists  []*SpecNode
	TagContent string
	Expression string

	IsFolder   bool
	IsBareLeaf bool
	BareValue  string
}

// leafRecord mirrors the two permitted leaf record shapes; both fields are
// decoded and the caller picks the one relevant to its tree.
type leafRecord struct {
	Name       string      `yaml:"name"`
	Playlists  []*SpecNode `yaml:"playlists"`
	TagContent string      `yaml:"tag_content"`
	Expression string      `yaml:"expression"`
}

// UnmarshalYAML implements yaml.Unmarshaler so a SpecNode can come from
// either a bare scalar or a mapping, per the grammar above.
func (n *SpecNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.IsBareLeaf = true
		n.BareValue = value.Value
		return nil
	case yaml.MappingNode:
		var rec leafRecord
		if err := value.Decode(&rec); err != nil {
			return err
		}
		n.Name = rec.Name
		if rec.Playlists != nil {
			n.IsFolder = true
			n.Playlists = rec.Playlists
			return nil
		}
		n.TagContent = rec.TagContent
		n.Expression = rec.Expression
		return nil
	default:
		return &SpecError{Message: "spec node must be a string or a mapping"}
	}
}

// LeafTagContent returns the tag name for a tags-tree leaf, honoring the
// bare-string shorthand.
func (n *SpecNode) LeafTagContent() string {
	if n.IsBareLeaf {
		return n.BareValue
	}
	return n.TagContent
}

// LeafExpression returns the expression source for a combiner-tree leaf,
// honoring the bare-string shorthand.
func (n *SpecNode) LeafExpression() string {
	if n.IsBareLeaf {
		return n.BareValue
	}
	return n.Expression
}

// DisplayName returns the declared name override, or fall back, for a leaf.
func (n *SpecNode) DisplayName(fallback string) string {
	if n.Name != "" {
		return n.Name
	}
	return fallback
}
