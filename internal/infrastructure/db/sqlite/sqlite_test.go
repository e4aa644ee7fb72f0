package sqlite

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, repo *UserRepository, username, email string) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	created, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	created := seedUser(t, repo, "ana", "ana@x.com")
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	byName, err := repo.FindByUsername(context.Background(), "ana")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if byName.Email != "ana@x.com" {
		t.Fatalf("unexpected email: %s", byName.Email)
	}

	byEmail, err := repo.FindByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("id mismatch: %s vs %s", byEmail.ID, created.ID)
	}

	if _, err := repo.FindByUsername(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	seedUser(t, repo, "ana", "ana@x.com")

	now := time.Now().UTC()
	_, err := repo.Create(context.Background(), &domain.User{
		Username: "ana", Email: "other@x.com", PasswordHash: "h", Role: domain.RoleUser,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	_, err = repo.Create(context.Background(), &domain.User{
		Username: "bea", Email: "ana@x.com", PasswordHash: "h", Role: domain.RoleUser,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func setupRecipeRepo(t *testing.T) (*RecipeRepository, string) {
	t.Helper()
	db := openTestDB(t)

	users := NewUserRepository(db)
	if err := users.Init(context.Background()); err != nil {
		t.Fatalf("init users: %v", err)
	}
	owner := seedUser(t, users, "ana", "ana@x.com")

	repo := NewRecipeRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init recipes: %v", err)
	}
	return repo, owner.ID
}

func TestRecipeRepository_RoundTrip(t *testing.T) {
	repo, ownerID := setupRecipeRepo(t)

	created, err := repo.Create(context.Background(), &domain.Recipe{
		Name:        "Omelette",
		Ingredients: []string{"2 eggs", "salt"},
		Steps:       []string{"beat", "cook"},
		OwnerID:     ownerID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !reflect.DeepEqual(got.Ingredients, []string{"2 eggs", "salt"}) {
		t.Fatalf("ingredients mangled: %v", got.Ingredients)
	}
	if !reflect.DeepEqual(got.Steps, []string{"beat", "cook"}) {
		t.Fatalf("steps mangled: %v", got.Steps)
	}
	if got.OwnerID != ownerID {
		t.Fatalf("owner mismatch: %s vs %s", got.OwnerID, ownerID)
	}
}

func TestRecipeRepository_DuplicateNamePerOwner(t *testing.T) {
	repo, ownerID := setupRecipeRepo(t)

	if _, err := repo.Create(context.Background(), &domain.Recipe{Name: "Omelette", OwnerID: ownerID}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Same name, case-folded, same owner.
	if _, err := repo.Create(context.Background(), &domain.Recipe{Name: "omelette", OwnerID: ownerID}); err != domain.ErrDuplicateRecipe {
		t.Fatalf("expected ErrDuplicateRecipe, got %v", err)
	}
}

func TestRecipeRepository_UpdatePartial(t *testing.T) {
	repo, ownerID := setupRecipeRepo(t)

	created, _ := repo.Create(context.Background(), &domain.Recipe{
		Name:        "Omelette",
		Ingredients: []string{"2 eggs", "salt"},
		Steps:       []string{"beat", "cook"},
		OwnerID:     ownerID,
	})

	ingredients := []string{"3 eggs", "salt", "pepper"}
	if err := repo.Update(context.Background(), created.ID, ports.RecipeUpdate{Ingredients: &ingredients}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), created.ID)
	if !reflect.DeepEqual(got.Ingredients, ingredients) {
		t.Fatalf("ingredients not replaced: %v", got.Ingredients)
	}
	if !reflect.DeepEqual(got.Steps, []string{"beat", "cook"}) {
		t.Fatalf("steps should be untouched: %v", got.Steps)
	}
	if got.Name != "Omelette" {
		t.Fatalf("name should be untouched: %s", got.Name)
	}

	if err := repo.Update(context.Background(), "99999", ports.RecipeUpdate{Ingredients: &ingredients}); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeRepository_DeleteAndNotFound(t *testing.T) {
	repo, ownerID := setupRecipeRepo(t)

	created, _ := repo.Create(context.Background(), &domain.Recipe{Name: "Omelette", OwnerID: ownerID})

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), created.ID); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound for repeat delete, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "not-a-number"); err != domain.ErrRecipeNotFound {
		t.Fatalf("malformed id should read as not found, got %v", err)
	}
}

func TestRecipeRepository_ListAndSearch(t *testing.T) {
	repo, ownerID := setupRecipeRepo(t)

	_, _ = repo.Create(context.Background(), &domain.Recipe{
		Name: "Omelette", Ingredients: []string{"3 Eggs", "salt"}, OwnerID: ownerID,
	})
	_, _ = repo.Create(context.Background(), &domain.Recipe{
		Name: "Salad", Ingredients: []string{"lettuce", "tomato"}, OwnerID: ownerID,
	})

	list, err := repo.ListByOwner(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(list))
	}

	found, err := repo.SearchByIngredient(context.Background(), ownerID, "EGG")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Omelette" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	none, err := repo.SearchByIngredient(context.Background(), ownerID, "chocolate")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}

	// A fragment spanning two ingredients matches neither of them.
	spanning, err := repo.SearchByIngredient(context.Background(), ownerID, "Eggs\nsalt")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(spanning) != 0 {
		t.Fatalf("fragment spanning ingredients must not match, got %+v", spanning)
	}
}

func TestExpenseRepository_CRUDAndTotal(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := repo.Create(context.Background(), &domain.Expense{
		Title: "Groceries", Description: "weekly", Cost: 42.5, OwnerID: "1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.Expense{Title: "Bus", Cost: 2.5, OwnerID: "1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.Expense{Title: "Rent", Cost: 900, OwnerID: "2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "Groceries" || got.Cost != 42.5 {
		t.Fatalf("unexpected expense: %+v", got)
	}

	total, err := repo.TotalByOwner(context.Background(), "1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 45.0 {
		t.Fatalf("expected 45.0, got %v", total)
	}

	cost := 40.0
	if err := repo.Update(context.Background(), id, ports.ExpenseUpdate{Cost: &cost}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.FindByID(context.Background(), id)
	if got.Cost != 40.0 || got.Description != "weekly" {
		t.Fatalf("partial update wrong: %+v", got)
	}

	matches, err := repo.SearchByTitle(context.Background(), "1", "groc")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), id); err != domain.ErrExpenseNotFound {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}

	// Empty ledger sums to zero, not an error.
	emptyTotal, err := repo.TotalByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("empty total: %v", err)
	}
	if emptyTotal != 0 {
		t.Fatalf("expected 0, got %v", emptyTotal)
	}
}
