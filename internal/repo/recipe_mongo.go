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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recipesCollection = "recipes"

type recipeDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	RecipeImageURL string             `bson:"recipeImageUrl"`
	Ingredients    []string           `bson:"ingredients"`
	Instructions   string             `bson:"instructions"`
	PrepTime       int                `bson:"prepTime"`
	CookTime       int                `bson:"cookTime"`
	TotalTime      int                `bson:"totalTime"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d recipeDoc) model() *models.Recipe {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &models.Recipe{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		RecipeImageURL: d.RecipeImageURL,
		Ingredients:    ingredients,
		Instructions:   d.Instructions,
		PrepTime:       d.PrepTime,
		CookTime:       d.CookTime,
		TotalTime:      d.TotalTime,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// MongoRecipeStore keeps recipes as documents in the "recipes" collection.
type MongoRecipeStore struct {
	coll *mongo.Collection
}

func NewMongoRecipeStore(db *mongo.Database) *MongoRecipeStore {
	return &MongoRecipeStore{coll: db.Collection(recipesCollection)}
}

func (s *MongoRecipeStore) Create(ctx context.Context, d models.RecipeDraft) (*models.Recipe, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	doc := recipeDoc{
		ID:             primitive.NewObjectID(),
		Title:          d.Title,
		RecipeImageURL: d.RecipeImageURL,
		Ingredients:    ingredients,
		Instructions:   d.Instructions,
		PrepTime:       d.PrepTime,
		CookTime:       d.CookTime,
		TotalTime:      d.TotalTime,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoRecipeStore) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	recipes := make([]models.Recipe, 0, len(docs))
	for _, d := range docs {
		recipes = append(recipes, *d.model())
	}
	return recipes, nil
}

func (s *MongoRecipeStore) Get(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc recipeDoc
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoRecipeStore) Update(ctx context.Context, id string, p models.RecipePatch) (*models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Empty() {
		return s.Get(ctx, id)
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)}}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.RecipeImageURL != nil {
		set = append(set, bson.E{Key: "recipeImageUrl", Value: *p.RecipeImageURL})
	}
	if p.Ingredients != nil {
		set = append(set, bson.E{Key: "ingredients", Value: *p.Ingredients})
	}
	if p.Instructions != nil {
		set = append(set, bson.E{Key: "instructions", Value: *p.Instructions})
	}
	if p.PrepTime != nil {
		set = append(set, bson.E{Key: "prepTime", Value: *p.PrepTime})
	}
	if p.CookTime != nil {
		set = append(set, bson.E{Key: "cookTime", Value: *p.CookTime})
	}
	if p.TotalTime != nil {
		set = append(set, bson.E{Key: "totalTime", Value: *p.TotalTime})
	}

	var doc recipeDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoRecipeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRecipeStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}
