package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// Ingredient and step lists are stored newline-joined. Empty lists
// round-trip as empty strings.
const createRecipesTable = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	ingredients TEXT NOT NULL DEFAULT '',
	steps TEXT NOT NULL DEFAULT '',
	owner_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_recipes_owner_name ON recipes(owner_id, lower(name));
CREATE INDEX IF NOT EXISTS idx_recipes_owner ON recipes(owner_id);
`

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRecipesTable); err != nil {
		return fmt.Errorf("create recipes table: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO recipes (name, ingredients, steps, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		recipe.Name,
		joinLines(recipe.Ingredients),
		joinLines(recipe.Steps),
		recipe.OwnerID,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateRecipe
		}
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("recipe last insert id: %w", err)
	}

	created := *recipe
	created.ID = strconv.FormatInt(id, 10)
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, name, ingredients, steps, owner_id, created_at, updated_at
FROM recipes
WHERE id = ?`,
		numID,
	)
	return scanRecipe(row)
}

func (r *RecipeRepository) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, ingredients, steps, owner_id, created_at, updated_at
FROM recipes
WHERE owner_id = ? AND lower(name) = lower(?)`,
		ownerID,
		name,
	)
	return scanRecipe(row)
}

// Update builds the SET clause dynamically from the non-nil fields.
func (r *RecipeRepository) Update(ctx context.Context, id string, upd ports.RecipeUpdate) error {
	numID, err := parseID(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Ingredients != nil {
		sets = append(sets, "ingredients = ?")
		args = append(args, joinLines(*upd.Ingredients))
	}
	if upd.Steps != nil {
		sets = append(sets, "steps = ?")
		args = append(args, joinLines(*upd.Steps))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), numID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE recipes SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecipe
		}
		return fmt.Errorf("update recipe: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recipe rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, numID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete recipe rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name FROM recipes WHERE owner_id = ? ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// SearchByIngredient matches the fragment against each ingredient on its
// own, never across two of them. Ingredients are stored one per line, so a
// fragment containing a newline cannot match.
func (r *RecipeRepository) SearchByIngredient(ctx context.Context, ownerID, fragment string) ([]domain.RecipeSummary, error) {
	if strings.ContainsRune(fragment, '\n') {
		return []domain.RecipeSummary{}, nil
	}

	// LIKE is case-insensitive for ASCII in sqlite; lower() covers the rest.
	pattern := "%" + strings.ToLower(fragment) + "%"

	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == "" {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, name FROM recipes WHERE lower(ingredients) LIKE ? ORDER BY id`,
			pattern,
		)
	} else {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, name FROM recipes WHERE owner_id = ? AND lower(ingredients) LIKE ? ORDER BY id`,
			ownerID,
			pattern,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanRecipe(row *sql.Row) (*domain.Recipe, error) {
	var (
		recipe      domain.Recipe
		id, ownerID int64
		ingredients string
		steps       string
	)
	if err := row.Scan(
		&id,
		&recipe.Name,
		&ingredients,
		&steps,
		&ownerID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	recipe.ID = strconv.FormatInt(id, 10)
	recipe.OwnerID = strconv.FormatInt(ownerID, 10)
	recipe.Ingredients = splitLines(ingredients)
	recipe.Steps = splitLines(steps)
	return &recipe, nil
}

func scanSummaries(rows *sql.Rows) ([]domain.RecipeSummary, error) {
	var out []domain.RecipeSummary
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan recipe summary: %w", err)
		}
		out = append(out, domain.RecipeSummary{ID: strconv.FormatInt(id, 10), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
