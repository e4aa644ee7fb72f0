package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

const recipesCollection = "recetas"

const defaultTimeout = 30 * time.Second

type RecipeRepository struct {
	coll *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipesCollection)}
}

type mongoRecipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	NameLower   string             `bson:"name_lower"`
	Ingredients []string           `bson:"ingredients"`
	Steps       []string           `bson:"steps"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// EnsureIndexes creates the owner/name uniqueness and lookup indexes.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoRecipe{
		Name:        recipe.Name,
		NameLower:   strings.ToLower(recipe.Name),
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		OwnerID:     recipe.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRecipe
		}
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	created := *recipe
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	var mr mongoRecipe
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return toDomain(&mr), nil
}

func (r *RecipeRepository) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "name_lower": strings.ToLower(name)}

	var mr mongoRecipe
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe by name: %w", err)
	}
	return toDomain(&mr), nil
}

func (r *RecipeRepository) Update(ctx context.Context, id string, upd ports.RecipeUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_lower"] = strings.ToLower(*upd.Name)
	}
	if upd.Ingredients != nil {
		set["ingredients"] = *upd.Ingredients
	}
	if upd.Steps != nil {
		set["steps"] = *upd.Steps
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecipe
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cur.Close(ctx)

	return decodeSummaries(ctx, cur)
}

// SearchByIngredient matches the fragment against each ingredient on its
// own, never across two of them; the same semantics the other backends
// implement over their joined storage.
func (r *RecipeRepository) SearchByIngredient(ctx context.Context, ownerID, fragment string) ([]domain.RecipeSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"ingredients": bson.M{
			"$elemMatch": bson.M{"$regex": regexp.QuoteMeta(fragment), "$options": "i"},
		},
	}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer cur.Close(ctx)

	return decodeSummaries(ctx, cur)
}

func decodeSummaries(ctx context.Context, cur *mongo.Cursor) ([]domain.RecipeSummary, error) {
	var out []domain.RecipeSummary
	for cur.Next(ctx) {
		var doc struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recipe summary: %w", err)
		}
		out = append(out, domain.RecipeSummary{ID: doc.ID.Hex(), Name: doc.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

func toDomain(mr *mongoRecipe) *domain.Recipe {
	return &domain.Recipe{
		ID:          mr.ID.Hex(),
		Name:        mr.Name,
		Ingredients: mr.Ingredients,
		Steps:       mr.Steps,
		OwnerID:     mr.OwnerID,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}
}
