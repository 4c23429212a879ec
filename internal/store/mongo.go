package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// mongoDocument maps to one document of the "documents" collection.
type mongoDocument struct {
	Key       string    `bson:"_id"`
	Version   int64     `bson:"version"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores the serialized document in a MongoDB collection,
// keyed by _id. The version field drives the compare-and-swap.
type MongoBackend struct {
	coll *mongo.Collection
	key  string
}

// NewMongoBackend returns a MongoBackend using key (DefaultKey when empty).
func NewMongoBackend(coll *mongo.Collection, key string) *MongoBackend {
	if key == "" {
		key = DefaultKey
	}
	return &MongoBackend{coll: coll, key: key}
}

func (m *MongoBackend) Load(ctx context.Context) (*Document, error) {
	var row mongoDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": m.key}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", m.key, err)
	}
	return Decode([]byte(row.Data))
}

func (m *MongoBackend) Save(ctx context.Context, doc *Document) error {
	data, version, err := nextRevision(doc)
	if err != nil {
		return err
	}

	if doc.Version == 0 {
		_, err := m.coll.InsertOne(ctx, mongoDocument{
			Key:       m.key,
			Version:   version,
			Data:      string(data),
			UpdatedAt: time.Now(),
		})
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		if err != nil {
			return fmt.Errorf("insert document %s: %w", m.key, err)
		}
		doc.Version = version
		return nil
	}

	res, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": m.key, "version": doc.Version},
		bson.M{"$set": bson.M{
			"data":       string(data),
			"version":    version,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update document %s: %w", m.key, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}

	doc.Version = version
	return nil
}
