package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/observability"
)

const (
	mongoDatabase   = "gridlock"
	mongoCollection = "boards"
)

// MongoStore persists boards to MongoDB as native documents; the bson tags
// on the wire types make the stored documents queryable per field.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects with the given URI (e.g. "mongodb://localhost:27017")
// and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Load retrieves a board by name.
func (s *MongoStore) Load(ctx context.Context, name string) (*board.Board, error) {
	var b board.Board
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnMiss(ctx, BackendMongo, name)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.Store().OnLoad(ctx, BackendMongo, name)
	return &b, nil
}

// Save stores a board under its name, overwriting any previous version.
func (s *MongoStore) Save(ctx context.Context, b *board.Board) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": b.Name}, b, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	observability.Store().OnSave(ctx, BackendMongo, b.Name, len(b.Widgets))
	return nil
}

// List returns all stored board names.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes a board. Deleting a missing board is a no-op.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
