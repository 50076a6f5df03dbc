package models

// Playlist is the Folder/Leaf sum type described in spec §3. It is modeled
// as a sealed interface with two concrete variants rather than a class
// hierarchy with runtime type assertions — callers switch on concrete type
// when they need variant-specific data.
type Playlist interface {
	Name() string
	playlistVariant()
}

// Folder holds an ordered sequence of child playlists. Child name
// uniqueness is not enforced; duplicates are semantically permitted (§3).
type Folder struct {
	FolderName string
	Children   []Playlist
}

func (f *Folder) Name() string { return f.FolderName }
func (f *Folder) playlistVariant() {}

// Leaf holds an ordered sequence of track IDs, sorted ascending by TrackID
// unless a producer documents otherwise.
type Leaf struct {
	LeafName string
	Tracks   []TrackID
}

func (l *Leaf) Name() string { return l.LeafName }
func (l *Leaf) playlistVariant() {}

// NewFolder and NewLeaf are small convenience constructors used throughout
// the builder packages; they exist so construction sites read like the
// variant they build rather than a struct literal.
func NewFolder(name string, children ...Playlist) *Folder {
	return &Folder{FolderName: name, Children: children}
}

func NewLeaf(name string, tracks ...TrackID) *Leaf {
	return &Leaf{LeafName: name, Tracks: tracks}
}
