package store

import (
	"context"
	"fmt"

	"backup-manager/feature/backup/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collection names in the primary store.
const (
	collBuilds    = "builds"
	collUsers     = "users"
	collOrders    = "orders"
	collInquiries = "inquiries"
)

// MongoSource reads entity snapshots from the MongoDB primary store.
type MongoSource struct {
	db *mongo.Database
}

// NewMongoSource creates a Source backed by the given database handle.
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

func (s *MongoSource) Builds(ctx context.Context) ([]models.Build, error) {
	var out []models.Build
	if err := s.list(ctx, collBuilds, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) Users(ctx context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	if err := s.list(ctx, collUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := s.list(ctx, collOrders, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) Inquiries(ctx context.Context) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := s.list(ctx, collInquiries, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) list(ctx context.Context, collection string, out any) error {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list %s from primary store: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s from primary store: %w", collection, err)
	}
	return nil
}

// Counts fetches record counts for all four collections.
func (s *MongoSource) Counts(ctx context.Context) (models.Counts, error) {
	var counts models.Counts
	for _, c := range []struct {
		name string
		dest *int64
	}{
		{collBuilds, &counts.Builds},
		{collUsers, &counts.Users},
		{collOrders, &counts.Orders},
		{collInquiries, &counts.Inquiries},
	} {
		n, err := s.db.Collection(c.name).CountDocuments(ctx, bson.D{})
		if err != nil {
			return models.Counts{}, fmt.Errorf("failed to count %s in primary store: %w", c.name, err)
		}
		*c.dest = n
	}
	return counts, nil
}
