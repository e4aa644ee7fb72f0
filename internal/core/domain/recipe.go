package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("username already taken")
var ErrEmailExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRecipeNotFound = errors.New("recipe not found")
var ErrDuplicateRecipe = errors.New("recipe name already exists for this user")
var ErrForbidden = errors.New("access forbidden")

// Recipe is the core aggregate: a named, ordered collection of ingredient
// lines and preparation steps owned by a single user.
type Recipe struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Ingredients []string  `json:"ingredients" bson:"ingredients"`
	Steps       []string  `json:"steps" bson:"steps"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// RecipeSummary is the lightweight projection used by list and search.
type RecipeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
