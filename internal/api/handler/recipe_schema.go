package handler

import "time"

// --- Request types ---

type createRecipeRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps       []string `json:"steps"       validate:"required,min=1,dive,required"`
}

// updateRecipeRequest uses pointers so an absent field can be told apart
// from an explicitly empty one. Absent keeps the stored value.
type updateRecipeRequest struct {
	Name        *string   `json:"name"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
}

type shareRecipeRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type recipeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type recipeSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type recipeListResponse struct {
	Data []recipeSummaryResponse `json:"data"`
}

type shareRecipeResponse struct {
	Status string `json:"status"`
}
