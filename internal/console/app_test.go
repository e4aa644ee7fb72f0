package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

type fakeAuth struct{}

func (fakeAuth) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	return &domain.User{ID: "1", Username: username, Email: email, Role: domain.RoleUser}, nil
}

func (fakeAuth) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if password != "secret1" {
		return "", nil, domain.ErrInvalidCredentials
	}
	return "tok", &domain.User{ID: "1", Username: username, Role: domain.RoleUser}, nil
}

type fakeRecipes struct {
	recipes map[string]*domain.Recipe
	nextID  int
	updates []ports.RecipeUpdate
}

func newFakeRecipes() *fakeRecipes {
	return &fakeRecipes{recipes: make(map[string]*domain.Recipe), nextID: 1}
}

func (f *fakeRecipes) Create(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	id := "r1"
	r := &domain.Recipe{ID: id, Name: in.Name, Ingredients: in.Ingredients, Steps: in.Steps, OwnerID: in.OwnerID}
	f.recipes[id] = r
	return r, nil
}

func (f *fakeRecipes) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeRecipes) Update(ctx context.Context, caller ports.Caller, id string, upd ports.RecipeUpdate) (*domain.Recipe, error) {
	f.updates = append(f.updates, upd)
	r, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeRecipes) Delete(ctx context.Context, caller ports.Caller, id string) error {
	if _, ok := f.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipes) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	var out []domain.RecipeSummary
	for _, r := range f.recipes {
		out = append(out, domain.RecipeSummary{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (f *fakeRecipes) SearchByIngredient(ctx context.Context, caller ports.Caller, fragment string) ([]domain.RecipeSummary, error) {
	var out []domain.RecipeSummary
	for _, r := range f.recipes {
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), strings.ToLower(fragment)) {
				out = append(out, domain.RecipeSummary{ID: r.ID, Name: r.Name})
				break
			}
		}
	}
	return out, nil
}

func withStubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestApp_LoginAddListLogout(t *testing.T) {
	withStubPassword(t, "secret1")

	// Log in, add a recipe, list, show details, log out, exit.
	script := strings.Join([]string{
		"2",      // log in
		"ana",    // username
		"1",      // add recipe
		"mole",   // name
		"chile",  // ingredient
		"",       // end ingredients
		"tostar", // step
		"",       // end steps
		"4",      // list
		"6",      // details
		"r1",     // id
		"7",      // log out
		"3",      // exit
	}, "\n") + "\n"

	var out bytes.Buffer
	app := NewApp(fakeAuth{}, newFakeRecipes(), strings.NewReader(script), &out)
	app.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Welcome to your recipe book, ana!") {
		t.Fatalf("missing welcome message:\n%s", text)
	}
	if !strings.Contains(text, `Recipe "mole" saved with id r1.`) {
		t.Fatalf("missing save confirmation:\n%s", text)
	}
	if !strings.Contains(text, "r1  mole") {
		t.Fatalf("missing listing entry:\n%s", text)
	}
	if !strings.Contains(text, "- chile") {
		t.Fatalf("missing ingredient in details:\n%s", text)
	}
	if !strings.Contains(text, "1. tostar") {
		t.Fatalf("missing step in details:\n%s", text)
	}
	if !strings.Contains(text, "Bye!") {
		t.Fatalf("missing exit message:\n%s", text)
	}
}

func TestApp_LoginRejectedStaysOnOuterMenu(t *testing.T) {
	withStubPassword(t, "wrong")

	script := "2\nana\n3\n"
	var out bytes.Buffer
	app := NewApp(fakeAuth{}, newFakeRecipes(), strings.NewReader(script), &out)
	app.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, domain.ErrInvalidCredentials.Error()) {
		t.Fatalf("expected credential error in output:\n%s", text)
	}
	if strings.Contains(text, "--- Recipes ---") {
		t.Fatalf("should not reach recipe menu:\n%s", text)
	}
}

func TestApp_UpdateBlankFieldsKeptNil(t *testing.T) {
	withStubPassword(t, "secret1")

	recipes := newFakeRecipes()
	recipes.recipes["r1"] = &domain.Recipe{ID: "r1", Name: "mole", OwnerID: "1"}

	script := strings.Join([]string{
		"2",         // log in
		"ana",       // username
		"2",         // update recipe
		"r1",        // id
		"mole rojo", // new name
		"",          // keep ingredients
		"",          // keep steps
		"7",         // log out
		"3",         // exit
	}, "\n") + "\n"

	var out bytes.Buffer
	app := NewApp(fakeAuth{}, recipes, strings.NewReader(script), &out)
	app.Run(context.Background())

	if len(recipes.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(recipes.updates))
	}
	upd := recipes.updates[0]
	if upd.Name == nil || *upd.Name != "mole rojo" {
		t.Fatalf("expected name update, got %v", upd.Name)
	}
	if upd.Ingredients != nil || upd.Steps != nil {
		t.Fatalf("blank prompts must map to nil fields: %+v", upd)
	}
}

func TestApp_InvalidChoiceReprintsMenu(t *testing.T) {
	script := "9\n3\n"
	var out bytes.Buffer
	app := NewApp(fakeAuth{}, newFakeRecipes(), strings.NewReader(script), &out)
	app.Run(context.Background())

	text := out.String()
	if !strings.Contains(text, "Invalid option, try again.") {
		t.Fatalf("missing invalid-option message:\n%s", text)
	}
	if strings.Count(text, "--- Recetario ---") != 2 {
		t.Fatalf("expected menu printed twice:\n%s", text)
	}
}
