package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

type stubRecipeService struct {
	createFn func(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error)
	getFn    func(ctx context.Context, caller ports.Caller, id string) (*domain.Recipe, error)
	updateFn func(ctx context.Context, caller ports.Caller, id string, upd ports.RecipeUpdate) (*domain.Recipe, error)
	deleteFn func(ctx context.Context, caller ports.Caller, id string) error
	listFn   func(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error)
	searchFn func(ctx context.Context, caller ports.Caller, fragment string) ([]domain.RecipeSummary, error)
}

func (s *stubRecipeService) Create(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	return s.createFn(ctx, in)
}

func (s *stubRecipeService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Recipe, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubRecipeService) Update(ctx context.Context, caller ports.Caller, id string, upd ports.RecipeUpdate) (*domain.Recipe, error) {
	return s.updateFn(ctx, caller, id, upd)
}

func (s *stubRecipeService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubRecipeService) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubRecipeService) SearchByIngredient(ctx context.Context, caller ports.Caller, fragment string) ([]domain.RecipeSummary, error) {
	return s.searchFn(ctx, caller, fragment)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", "7")
	c.Set("role", domain.RoleUser)
	return c
}

func TestRecipeHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
			if in.OwnerID != "7" {
				t.Fatalf("expected owner from claims, got %q", in.OwnerID)
			}
			return &domain.Recipe{ID: "r1", Name: in.Name, Ingredients: in.Ingredients, Steps: in.Steps, OwnerID: in.OwnerID}, nil
		},
	}
	handler := NewRecipeHandler(stub)

	body := strings.NewReader(`{"name":"mole","ingredients":["chile","chocolate"],"steps":["tostar","moler"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recipes", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "r1" || resp["name"] != "mole" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRecipeHandler_Create_EmptyIngredients(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRecipeHandler(stub)

	body := strings.NewReader(`{"name":"mole","ingredients":[],"steps":["tostar"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/recipes", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRecipeHandler_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewRecipeHandler(&stubRecipeService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes/r1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims injected

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRecipeHandler_Update_PassesPointerFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		updateFn: func(ctx context.Context, caller ports.Caller, id string, upd ports.RecipeUpdate) (*domain.Recipe, error) {
			if upd.Name == nil || *upd.Name != "mole negro" {
				t.Fatalf("expected name update, got %v", upd.Name)
			}
			if upd.Ingredients != nil {
				t.Fatalf("ingredients should be nil when absent from payload")
			}
			return &domain.Recipe{ID: id, Name: *upd.Name, OwnerID: caller.UserID}, nil
		},
	}
	handler := NewRecipeHandler(stub)

	body := strings.NewReader(`{"name":"mole negro"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/recipes/r1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecipeHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		deleteFn: func(ctx context.Context, caller ports.Caller, id string) error {
			if id != "r1" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil
		},
	}
	handler := NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/recipes/r1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRecipeHandler_Search_RequiresQuery(t *testing.T) {
	e := newTestEcho()
	handler := NewRecipeHandler(&stubRecipeService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes/search", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Search(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRecipeHandler_Search_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		searchFn: func(ctx context.Context, caller ports.Caller, fragment string) ([]domain.RecipeSummary, error) {
			if fragment != "chile" {
				t.Fatalf("unexpected fragment %q", fragment)
			}
			return []domain.RecipeSummary{{ID: "r1", Name: "mole"}}, nil
		},
	}
	handler := NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes/search?ingredient=chile", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mole") {
		t.Fatalf("expected result in body, got %s", rec.Body.String())
	}
}
