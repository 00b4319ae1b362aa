package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/ringlet/pkg/diagram"
)

// MongoStore persists diagrams in a MongoDB collection, one document per
// saved name. Suitable for server deployments where diagrams outlive a
// single process.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // defaults to mongodb://localhost:27017
	Database   string // defaults to "ringlet"
	Collection string // defaults to "diagrams"
}

// mongoDoc is the stored document shape.
type mongoDoc struct {
	Name      string         `bson:"name"`
	Config    diagram.Config `bson:"config"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and ensures the unique name index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "ringlet"
	}
	if cfg.Collection == "" {
		cfg.Collection = "diagrams"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, cfg diagram.Config) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	doc := mongoDoc{Name: name, Config: cfg, UpdatedAt: time.Now()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": name},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save diagram %q: %w", name, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (diagram.Config, error) {
	if err := ValidateName(name); err != nil {
		return diagram.Config{}, err
	}

	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return diagram.Config{}, NotFound(name)
	}
	if err != nil {
		return diagram.Config{}, fmt.Errorf("load diagram %q: %w", name, err)
	}
	return doc.Config, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Entry, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"name": 1, "updated_at": 1}).
			SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer cur.Close(ctx)

	var entries []Entry
	for cur.Next(ctx) {
		var doc mongoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode diagram entry: %w", err)
		}
		entries = append(entries, Entry{Name: doc.Name, UpdatedAt: doc.UpdatedAt})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	return entries, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("delete diagram %q: %w", name, err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
