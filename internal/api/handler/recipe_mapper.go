package handler

import (
	"github.com/recetario/recipe-book/internal/core/domain"
)

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func toRecipeListResponse(items []domain.RecipeSummary) recipeListResponse {
	out := make([]recipeSummaryResponse, len(items))
	for i, s := range items {
		out[i] = recipeSummaryResponse{ID: s.ID, Name: s.Name}
	}
	return recipeListResponse{Data: out}
}
