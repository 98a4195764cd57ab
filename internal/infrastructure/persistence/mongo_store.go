package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a client and verifies it with a ping. Callers disconnect it.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoStore keeps a collection snapshot as one document per item.
// Each document holds the item's JSON form under "payload" and its
// snapshot position for ordering.
type MongoStore[T any] struct {
	col  *mongo.Collection
	idOf func(T) string
}

type mongoEnvelope struct {
	ID       string   `bson:"_id"`
	Position int      `bson:"position"`
	Payload  bson.Raw `bson:"payload"`
}

// NewMongoStore creates a store on col; idOf supplies the document id
func NewMongoStore[T any](ctx context.Context, col *mongo.Collection, idOf func(T) string) (*MongoStore[T], error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "position", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to create index on %s: %w", col.Name(), err)
	}
	return &MongoStore[T]{col: col, idOf: idOf}, nil
}

// Load reads the snapshot in position order
func (s *MongoStore[T]) Load(ctx context.Context) ([]T, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.col.Name(), err)
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var env mongoEnvelope
		if err := cur.Decode(&env); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", s.col.Name(), err)
		}
		raw, err := bson.MarshalExtJSON(env.Payload, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s/%s: %w", s.col.Name(), env.ID, err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", s.col.Name(), env.ID, err)
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.col.Name(), err)
	}
	return out, nil
}

// Save replaces the collection content.
// The replacement is not atomic on a standalone server; the registry rewrites the
// full snapshot on the next mutation anyway.
func (s *MongoStore[T]) Save(ctx context.Context, items []T) error {
	docs := make([]any, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode %s item: %w", s.col.Name(), err)
		}
		var payload bson.D
		if err := bson.UnmarshalExtJSON(raw, false, &payload); err != nil {
			return fmt.Errorf("failed to convert %s item: %w", s.col.Name(), err)
		}
		docs = append(docs, bson.D{
			{Key: "_id", Value: s.idOf(item)},
			{Key: "position", Value: i},
			{Key: "payload", Value: payload},
		})
	}

	if _, err := s.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.col.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.col.Name(), err)
	}
	return nil
}
