package console

import (
	"context"
	"fmt"

	"github.com/recetario/recipe-book/internal/core/ports"
)

func (a *App) addRecipe(ctx context.Context) {
	name, err := promptLine(a.in, a.out, "Recipe name")
	if err != nil {
		return
	}
	ingredients, err := promptList(a.in, a.out, "Ingredients, one per line")
	if err != nil {
		return
	}
	steps, err := promptList(a.in, a.out, "Steps, one per line")
	if err != nil {
		return
	}

	recipe, err := a.recipes.Create(ctx, ports.CreateRecipeInput{
		OwnerID:     a.caller.UserID,
		Name:        name,
		Ingredients: ingredients,
		Steps:       steps,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintf(a.out, "Recipe %q saved with id %s.\n", recipe.Name, recipe.ID)
}

// updateRecipe prompts for each field; blank input keeps the stored value.
func (a *App) updateRecipe(ctx context.Context) {
	id, err := promptLine(a.in, a.out, "Recipe id")
	if err != nil {
		return
	}

	var upd ports.RecipeUpdate
	name, err := promptLine(a.in, a.out, "New name (blank to keep)")
	if err != nil {
		return
	}
	if name != "" {
		upd.Name = &name
	}

	ingredients, err := promptList(a.in, a.out, "New ingredients, one per line (blank to keep)")
	if err != nil {
		return
	}
	if len(ingredients) > 0 {
		upd.Ingredients = &ingredients
	}

	steps, err := promptList(a.in, a.out, "New steps, one per line (blank to keep)")
	if err != nil {
		return
	}
	if len(steps) > 0 {
		upd.Steps = &steps
	}

	if upd.IsZero() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return
	}

	if _, err := a.recipes.Update(ctx, a.caller, id, upd); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Recipe updated.")
}

func (a *App) deleteRecipe(ctx context.Context) {
	id, err := promptLine(a.in, a.out, "Recipe id")
	if err != nil {
		return
	}

	if err := a.recipes.Delete(ctx, a.caller, id); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Recipe deleted.")
}

func (a *App) listRecipes(ctx context.Context) {
	items, err := a.recipes.ListByOwner(ctx, a.caller.UserID)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No recipes yet.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "  %s  %s\n", item.ID, item.Name)
	}
}

func (a *App) searchRecipes(ctx context.Context) {
	fragment, err := promptLine(a.in, a.out, "Ingredient to search for")
	if err != nil {
		return
	}

	items, err := a.recipes.SearchByIngredient(ctx, a.caller, fragment)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No recipes matched.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "  %s  %s\n", item.ID, item.Name)
	}
}

func (a *App) showRecipe(ctx context.Context) {
	id, err := promptLine(a.in, a.out, "Recipe id")
	if err != nil {
		return
	}

	recipe, err := a.recipes.Get(ctx, a.caller, id)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}

	fmt.Fprintf(a.out, "\n%s\n", recipe.Name)
	fmt.Fprintln(a.out, "Ingredients:")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(a.out, "  - %s\n", ing)
	}
	fmt.Fprintln(a.out, "Steps:")
	for i, step := range recipe.Steps {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, step)
	}
}
