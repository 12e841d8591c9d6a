package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps all blobs in one kv collection, one document per key:
// {_id: key, data: <binary>, updatedAt: <time>}.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string // mongodb:// connection string
	Database   string // defaults to "polynav"
	Collection string // defaults to "kv"
}

// NewMongoStore connects to mongodb and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "polynav"
	}
	if cfg.Collection == "" {
		cfg.Collection = "kv"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

type kvDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (s *MongoStore) get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Data, true, nil
}

func (s *MongoStore) put(ctx context.Context, key string, data []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDoc{ID: key, Data: data, UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) GetGraph(ctx context.Context) ([]byte, bool, error) {
	return s.get(ctx, keyGraph)
}

func (s *MongoStore) PutGraph(ctx context.Context, data []byte) error {
	return s.put(ctx, keyGraph, data)
}

func (s *MongoStore) GetEntity(ctx context.Context, id string) ([]byte, bool, error) {
	return s.get(ctx, keyEntity+id)
}

func (s *MongoStore) PutEntity(ctx context.Context, id string, data []byte) error {
	return s.put(ctx, keyEntity+id, data)
}

func (s *MongoStore) GetHistory(ctx context.Context) ([]byte, bool, error) {
	return s.get(ctx, keyHistory)
}

func (s *MongoStore) PutHistory(ctx context.Context, data []byte) error {
	return s.put(ctx, keyHistory, data)
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
