// Package console is the interactive menu client. It drives the same
// services as the HTTP server against the configured backend.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// App is the interactive shell. Reader and writer are injected so the menu
// flows can be driven from tests.
type App struct {
	auth    ports.AuthService
	recipes ports.RecipeService

	in  *bufio.Reader
	out io.Writer

	caller ports.Caller
}

func NewApp(auth ports.AuthService, recipes ports.RecipeService, in io.Reader, out io.Writer) *App {
	return &App{
		auth:    auth,
		recipes: recipes,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run starts the outer menu loop and blocks until the user exits or input
// is exhausted.
func (a *App) Run(ctx context.Context) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Recetario ---")
		fmt.Fprintln(a.out, "1. Register")
		fmt.Fprintln(a.out, "2. Log in")
		fmt.Fprintln(a.out, "3. Exit")

		choice, err := promptLine(a.in, a.out, "Choose an option")
		if err != nil {
			return
		}

		switch choice {
		case "1":
			a.register(ctx)
		case "2":
			if a.login(ctx) {
				a.recipeMenu(ctx)
			}
		case "3":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Invalid option, try again.")
		}
	}
}

func (a *App) register(ctx context.Context) {
	username, err := promptLine(a.in, a.out, "Username")
	if err != nil {
		return
	}
	email, err := promptLine(a.in, a.out, "Email")
	if err != nil {
		return
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}

	if _, err := a.auth.Register(ctx, username, password, email); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Account created, you can log in now.")
}

func (a *App) login(ctx context.Context) bool {
	username, err := promptLine(a.in, a.out, "Username")
	if err != nil {
		return false
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return false
	}

	_, user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return false
	}

	a.caller = ports.Caller{UserID: user.ID, Role: user.Role}
	fmt.Fprintf(a.out, "Welcome to your recipe book, %s!\n", user.Username)
	return true
}

func (a *App) recipeMenu(ctx context.Context) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Recipes ---")
		fmt.Fprintln(a.out, "1. Add recipe")
		fmt.Fprintln(a.out, "2. Update recipe")
		fmt.Fprintln(a.out, "3. Delete recipe")
		fmt.Fprintln(a.out, "4. List my recipes")
		fmt.Fprintln(a.out, "5. Search by ingredient")
		fmt.Fprintln(a.out, "6. Show recipe details")
		fmt.Fprintln(a.out, "7. Log out")

		choice, err := promptLine(a.in, a.out, "Choose an option")
		if err != nil {
			return
		}

		switch choice {
		case "1":
			a.addRecipe(ctx)
		case "2":
			a.updateRecipe(ctx)
		case "3":
			a.deleteRecipe(ctx)
		case "4":
			a.listRecipes(ctx)
		case "5":
			a.searchRecipes(ctx)
		case "6":
			a.showRecipe(ctx)
		case "7":
			a.caller = ports.Caller{}
			return
		default:
			fmt.Fprintln(a.out, "Invalid option, try again.")
		}
	}
}
