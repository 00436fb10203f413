package repo

import (
	"context"
	"time"

	"github.com/crucial707/recipe-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	UserID       string             `bson:"user_id"`
	Action       string             `bson:"action"`
	ResourceType string             `bson:"resource_type"`
	ResourceID   string             `bson:"resource_id"`
	Details      string             `bson:"details,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// MongoAuditStore is the document-store counterpart of AuditRepo.
type MongoAuditStore struct {
	coll *mongo.Collection
}

func NewMongoAuditStore(db *mongo.Database) *MongoAuditStore {
	return &MongoAuditStore{coll: db.Collection("audit_log")}
}

func (s *MongoAuditStore) Log(ctx context.Context, userID, action, resourceType, resourceID, details string) error {
	_, err := s.coll.InsertOne(ctx, auditDoc{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	})
	return err
}

func (s *MongoAuditStore) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	entries := make([]models.AuditEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, models.AuditEntry{
			ID:           d.ID.Hex(),
			UserID:       d.UserID,
			Action:       d.Action,
			ResourceType: d.ResourceType,
			ResourceID:   d.ResourceID,
			Details:      d.Details,
			CreatedAt:    d.CreatedAt,
		})
	}
	return entries, nil
}
