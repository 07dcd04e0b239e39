package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

// Source reads benchmark documents from a MongoDB collection.
type Source struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewSource connects to mongoURI and verifies the connection.
func NewSource(mongoURI, database, collection string) (*Source, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Source{
		client:     client,
		database:   database,
		collection: collection,
	}, nil
}

func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Fetch returns documents ordered by created_at descending.
func (s *Source) Fetch(ctx context.Context, limit int) ([]domain.RawRecord, error) {
	coll := s.client.Database(s.database).Collection(s.collection)

	opts := options.Find().SetSort(bson.D{{Key: domain.FieldCreatedAt, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query benchmarks: %v", coreerrors.ErrSourceUnavailable, err)
	}
	defer cursor.Close(ctx)

	out := []domain.RawRecord{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: failed to decode benchmark: %v", coreerrors.ErrSourceUnavailable, err)
		}
		out = append(out, toRaw(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", coreerrors.ErrSourceUnavailable, err)
	}
	return out, nil
}

// toRaw flattens BSON-specific scalar types into values the normalizer
// understands.
func toRaw(doc bson.M) domain.RawRecord {
	row := make(domain.RawRecord, len(doc))
	for k, v := range doc {
		row[k] = convertValue(v)
	}
	if _, ok := row[domain.FieldID]; !ok {
		if oid, ok := row["_id"].(string); ok {
			row[domain.FieldID] = oid
		}
	}
	return row
}

func convertValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return v
	}
}
