package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// RecipeRepository stores each recipe as a hash under recipe:<uuid>.
// Two owner-scoped keys keep the lookups cheap:
//
//	owner:<id>:recipes  set of recipe IDs, for listings
//	owner:<id>:names    hash of lowercased name -> recipe ID, for the
//	                    duplicate-name guard and name lookups
type RecipeRepository struct {
	client *redis.Client
}

func NewRecipeRepository(client *redis.Client) *RecipeRepository {
	return &RecipeRepository{client: client}
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)

func recipeKey(id string) string { return "recipe:" + id }

func ownerSetKey(ownerID string) string { return "owner:" + ownerID + ":recipes" }

func ownerNamesKey(ownerID string) string { return "owner:" + ownerID + ":names" }

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	id := uuid.NewString()

	ok, err := r.client.HSetNX(ctx, ownerNamesKey(recipe.OwnerID), strings.ToLower(recipe.Name), id).Result()
	if err != nil {
		return nil, fmt.Errorf("claim recipe name: %w", err)
	}
	if !ok {
		return nil, domain.ErrDuplicateRecipe
	}

	now := time.Now().UTC()
	out := *recipe
	out.ID = id
	out.CreatedAt = now
	out.UpdatedAt = now

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, recipeKey(id), map[string]any{
		"name":        out.Name,
		"ingredients": joinLines(out.Ingredients),
		"steps":       joinLines(out.Steps),
		"owner_id":    out.OwnerID,
		"created_at":  now.Unix(),
		"updated_at":  now.Unix(),
	})
	pipe.SAdd(ctx, ownerSetKey(out.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		_ = r.client.HDel(ctx, ownerNamesKey(out.OwnerID), strings.ToLower(out.Name)).Err()
		return nil, fmt.Errorf("store recipe: %w", err)
	}
	return &out, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	fields, err := r.client.HGetAll(ctx, recipeKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	return hydrateRecipe(id, fields), nil
}

func (r *RecipeRepository) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*domain.Recipe, error) {
	id, err := r.client.HGet(ctx, ownerNamesKey(ownerID), strings.ToLower(name)).Result()
	if err == redis.Nil {
		return nil, domain.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve recipe name: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *RecipeRepository) Update(ctx context.Context, id string, upd ports.RecipeUpdate) error {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	namesKey := ownerNamesKey(current.OwnerID)
	oldName := strings.ToLower(current.Name)
	renamed := false
	var newName string

	if upd.Name != nil && !strings.EqualFold(*upd.Name, current.Name) {
		newName = strings.ToLower(*upd.Name)
		ok, err := r.client.HSetNX(ctx, namesKey, newName, id).Result()
		if err != nil {
			return fmt.Errorf("claim recipe name: %w", err)
		}
		if !ok {
			return domain.ErrDuplicateRecipe
		}
		if err := r.client.HDel(ctx, namesKey, oldName).Err(); err != nil {
			_ = r.client.HDel(ctx, namesKey, newName).Err()
			return fmt.Errorf("release recipe name: %w", err)
		}
		renamed = true
	}

	fields := map[string]any{"updated_at": time.Now().UTC().Unix()}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Ingredients != nil {
		fields["ingredients"] = joinLines(*upd.Ingredients)
	}
	if upd.Steps != nil {
		fields["steps"] = joinLines(*upd.Steps)
	}
	if err := r.client.HSet(ctx, recipeKey(id), fields).Err(); err != nil {
		// Put the name index back the way it was so it keeps pointing at
		// the stored name.
		if renamed {
			_ = r.client.HSet(ctx, namesKey, oldName, id).Err()
			_ = r.client.HDel(ctx, namesKey, newName).Err()
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, recipeKey(id))
	pipe.SRem(ctx, ownerSetKey(current.OwnerID), id)
	pipe.HDel(ctx, ownerNamesKey(current.OwnerID), strings.ToLower(current.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	names, err := r.client.HGetAll(ctx, ownerNamesKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	out := make([]domain.RecipeSummary, 0, len(names))
	for _, id := range names {
		name, err := r.client.HGet(ctx, recipeKey(id), "name").Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load recipe name: %w", err)
		}
		out = append(out, domain.RecipeSummary{ID: id, Name: name})
	}
	return out, nil
}

// SearchByIngredient matches the fragment against each ingredient on its
// own, never across two of them. Ingredients are stored one per line, so a
// fragment containing a newline cannot match.
func (r *RecipeRepository) SearchByIngredient(ctx context.Context, ownerID, fragment string) ([]domain.RecipeSummary, error) {
	if strings.ContainsRune(fragment, '\n') {
		return []domain.RecipeSummary{}, nil
	}

	needle := strings.ToLower(fragment)

	if ownerID != "" {
		ids, err := r.client.SMembers(ctx, ownerSetKey(ownerID)).Result()
		if err != nil {
			return nil, fmt.Errorf("list owner recipes: %w", err)
		}
		return r.matchIngredients(ctx, ids, needle)
	}

	// Admin-wide search walks every recipe hash.
	var ids []string
	iter := r.client.Scan(ctx, 0, recipeKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), "recipe:"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan recipes: %w", err)
	}
	return r.matchIngredients(ctx, ids, needle)
}

func (r *RecipeRepository) matchIngredients(ctx context.Context, ids []string, needle string) ([]domain.RecipeSummary, error) {
	out := make([]domain.RecipeSummary, 0)
	for _, id := range ids {
		fields, err := r.client.HMGet(ctx, recipeKey(id), "name", "ingredients").Result()
		if err != nil {
			return nil, fmt.Errorf("load recipe fields: %w", err)
		}
		name, _ := fields[0].(string)
		ingredients, _ := fields[1].(string)
		if name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(ingredients), needle) {
			out = append(out, domain.RecipeSummary{ID: id, Name: name})
		}
	}
	return out, nil
}

func hydrateRecipe(id string, fields map[string]string) *domain.Recipe {
	created, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	updated, _ := strconv.ParseInt(fields["updated_at"], 10, 64)
	return &domain.Recipe{
		ID:          id,
		Name:        fields["name"],
		Ingredients: splitLines(fields["ingredients"]),
		Steps:       splitLines(fields["steps"]),
		OwnerID:     fields["owner_id"],
		CreatedAt:   time.Unix(created, 0).UTC(),
		UpdatedAt:   time.Unix(updated, 0).UTC(),
	}
}

func joinLines(items []string) string { return strings.Join(items, "\n") }

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
