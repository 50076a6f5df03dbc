// Package mongostore is a MongoDB-backed collection.View, used by the CLI
// when not running in -dry-run mode. It mirrors the teacher's db package's
// connect-once, ping-then-reconnect-on-failure collection handles.
package mongostore

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/nextset/crate-builder/internal/models"
)

const (
	tracksCollectionName    = "tracks"
	playlistsCollectionName = "playlists"
)

// Store is a slice-per-call, connect-once collection.View over MongoDB.
type Store struct {
	conn   *mongo.Client
	log    *zap.Logger
	dbname string
	url    string

	// appended records every tree handed to AppendPlaylist during this
	// process's lifetime, purely so Serialize has something to dump
	// without a round trip back to Mongo.
	appended []models.Playlist
}

// New connects to url and returns a Store scoped to database dbname.
func New(ctx context.Context, log *zap.Logger, url, dbname string) (*Store, error) {
	conn, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	return &Store{conn: conn, log: log, dbname: dbname, url: url}, nil
}

func (s *Store) reconnect() error {
	if err := s.conn.Disconnect(context.Background()); err != nil {
		s.log.Warn("error disconnecting from collection store", zap.Error(err))
	}
	conn, err := mongo.Connect(context.Background(), options.Client().ApplyURI(s.url))
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	if err := s.conn.Ping(context.Background(), nil); err != nil {
		s.log.Error("failed to ping collection store, reconnecting", zap.Error(err))
		if reconnectErr := s.reconnect(); reconnectErr != nil {
			s.log.Error("failed to reconnect to collection store", zap.Error(reconnectErr))
		}
	}
	return s.conn.Database(s.dbname).Collection(name)
}

func (s *Store) tracksCollection() *mongo.Collection {
	return s.collection(tracksCollectionName)
}

func (s *Store) playlistsCollection() *mongo.Collection {
	return s.collection(playlistsCollectionName)
}

// trackDocument is the on-disk shape of a track. genre/comment carry the raw,
// undifferentiated strings the builder later splits into GenreTags/OtherTags
// during ingestion (see internal/orchestrator.ingestTracks) — this layer
// never interprets tag syntax.
type trackDocument struct {
	TrackID   string    `bson:"track_id"`
	Genre     string    `bson:"genre"`
	BPM       float64   `bson:"bpm"`
	Rating    int       `bson:"rating"`
	Year      int       `bson:"year"`
	DateAdded time.Time `bson:"date_added"`
	Artists   []string  `bson:"artists"`
	Label     string    `bson:"label"`
	Key       string    `bson:"key"`
	Comment   string    `bson:"comment"`
	Location  string    `bson:"location"`
}

// Tracks implements collection.View.
func (s *Store) Tracks() ([]models.Track, error) {
	ctx := context.Background()
	cur, err := s.tracksCollection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tracks := make([]models.Track, 0)
	for cur.Next(ctx) {
		var doc trackDocument
		if err := cur.Decode(&doc); err != nil {
			s.log.Error("failed to decode track", zap.Error(err))
			continue
		}
		tracks = append(tracks, models.Track{
			ID:        models.TrackID(doc.TrackID),
			RawGenre:  doc.Genre,
			BPM:       doc.BPM,
			Rating:    doc.Rating,
			Year:      doc.Year,
			DateAdded: doc.DateAdded,
			Artists:   doc.Artists,
			Label:     doc.Label,
			Key:       doc.Key,
			Comment:   doc.Comment,
			Location:  doc.Location,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// playlistDocument is the recursive on-disk shape of a built playlist tree;
// IsFolder selects which of Children/TrackIDs is populated, mirroring how
// models.Playlist's two variants are told apart in memory.
type playlistDocument struct {
	Name     string             `bson:"name"`
	IsFolder bool               `bson:"is_folder"`
	Children []playlistDocument `bson:"children,omitempty"`
	TrackIDs []string           `bson:"track_ids,omitempty"`
}

func toDocument(p models.Playlist) playlistDocument {
	switch n := p.(type) {
	case *models.Folder:
		children := make([]playlistDocument, len(n.Children))
		for i, c := range n.Children {
			children[i] = toDocument(c)
		}
		return playlistDocument{Name: n.FolderName, IsFolder: true, Children: children}
	case *models.Leaf:
		ids := make([]string, len(n.Tracks))
		for i, id := range n.Tracks {
			ids[i] = string(id)
		}
		return playlistDocument{Name: n.LeafName, IsFolder: false, TrackIDs: ids}
	default:
		return playlistDocument{Name: p.Name()}
	}
}

// AppendPlaylist implements collection.View: it inserts the tree as one
// document in the playlists collection and keeps a local copy for Serialize.
func (s *Store) AppendPlaylist(p models.Playlist) error {
	doc := toDocument(p)
	if _, err := s.playlistsCollection().InsertOne(context.Background(), doc); err != nil {
		return err
	}
	s.appended = append(s.appended, p)
	return nil
}

// Serialize writes a human-readable dump of every tree appended during this
// process's lifetime to path, the same debug-dump shape the in-memory
// implementation produces.
func (s *Store) Serialize(path string) error {
	var b strings.Builder
	for _, p := range s.appended {
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

// Close disconnects from the collection store.
func (s *Store) Close(ctx context.Context) error {
	return s.conn.Disconnect(ctx)
}

// Ping checks connectivity to the collection store.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx, nil)
}
