package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/recipe-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoUserStore keeps users in the "users" collection. Email uniqueness
// relies on the unique index created by db.ConnectMongo.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(usersCollection)}
}

func (s *MongoUserStore) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.model(), nil
}
