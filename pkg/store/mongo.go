package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/roomgen/pkg/dungeon"
)

// MongoConfig configures [NewMongoStore].
type MongoConfig struct {
	URI        string `toml:"uri" json:"-"`
	Database   string `toml:"database" json:"database"`
	Collection string `toml:"collection" json:"collection"`
}

// Defaults for an empty MongoConfig.
const (
	DefaultMongoDatabase   = "roomgen"
	DefaultMongoCollection = "dungeons"
)

// MongoStore keeps snapshots in one collection keyed by ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// record is the stored document. The seed is kept as a decimal string
// because BSON integers are signed 64-bit.
type record struct {
	ID        string           `bson:"_id"`
	Seed      string           `bson:"seed"`
	CreatedAt time.Time        `bson:"created_at"`
	Rooms     int              `bson:"rooms"`
	Dungeon   *dungeon.Dungeon `bson:"dungeon"`
}

func toRecord(d *dungeon.Dungeon) record {
	return record{
		ID:        d.ID,
		Seed:      strconv.FormatUint(d.Seed, 10),
		CreatedAt: d.CreatedAt,
		Rooms:     len(d.Rooms),
		Dungeon:   d,
	}
}

func (r record) toDungeon() (*dungeon.Dungeon, error) {
	seed, err := strconv.ParseUint(r.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("record %s: seed: %w", r.ID, err)
	}
	d := r.Dungeon
	if d == nil {
		d = &dungeon.Dungeon{CreatedAt: r.CreatedAt}
	}
	d.ID = r.ID
	d.Seed = seed
	return d, nil
}

// NewMongoStore connects, pings and ensures the created_at index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, d *dungeon.Dungeon) (string, error) {
	id := d.EnsureID()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, toRecord(d), options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("mongo put %s: %w", id, err)
	}
	return id, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*dungeon.Dungeon, error) {
	var r record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s: %w", id, err)
	}
	return r.toDungeon()
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(listLimit(limit))).
		SetProjection(bson.M{"dungeon.tiles": 0, "dungeon.edges": 0})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	var records []record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		d, err := r.toDungeon()
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(d))
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects with a five second deadline.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
