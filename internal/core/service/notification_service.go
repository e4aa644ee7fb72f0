package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recetario/recipe-book/internal/api/metrics"
	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// ShareDedup abstracts the repeat-share guard (Redis).
type ShareDedup interface {
	IsDuplicate(ctx context.Context, recipeID, recipient string) (bool, error)
	Mark(ctx context.Context, recipeID, recipient string) error
}

// MailEnqueuer is the hand-off point to the background delivery workers.
type MailEnqueuer interface {
	Enqueue(job ports.MailJob)
}

type notificationService struct {
	recipes ports.RecipeRepository
	dedup   ShareDedup
	queue   MailEnqueuer
	log     zerolog.Logger
}

// NewNotificationService returns a NotificationService. dedup may be nil,
// in which case repeat shares are not suppressed.
func NewNotificationService(
	recipes ports.RecipeRepository,
	dedup ShareDedup,
	queue MailEnqueuer,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{recipes: recipes, dedup: dedup, queue: queue, log: log}
}

// Share renders the recipe as a plain-text mail and drops it on the queue.
// The caller only learns that the hand-off succeeded; delivery is not
// confirmed and carries no ordering guarantee relative to the save.
func (s *notificationService) Share(ctx context.Context, caller ports.Caller, recipeID, recipient string) error {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("share recipe: %w", err)
	}
	if err := authorize(caller, recipe.OwnerID); err != nil {
		return err
	}

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, recipeID, recipient)
		if err != nil {
			s.log.Warn().Err(err).Str("recipe_id", recipeID).Msg("dedup check failed, sending anyway")
		} else if isDup {
			s.log.Debug().Str("recipe_id", recipeID).Str("recipient", recipient).Msg("duplicate share skipped")
			metrics.SharesDedupTotal.WithLabelValues("hit").Inc()
			return nil
		}
		metrics.SharesDedupTotal.WithLabelValues("miss").Inc()
		if markErr := s.dedup.Mark(ctx, recipeID, recipient); markErr != nil {
			s.log.Warn().Err(markErr).Str("recipe_id", recipeID).Msg("failed to set dedup key")
		}
	}

	s.queue.Enqueue(ports.MailJob{
		Recipient: recipient,
		Subject:   "Receta: " + recipe.Name,
		Body:      renderRecipeBody(recipe),
	})
	metrics.SharesEnqueuedTotal.Inc()

	s.log.Info().Str("recipe_id", recipeID).Str("recipient", recipient).Msg("share enqueued")
	return nil
}

func renderRecipeBody(r *domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Aquí tienes la receta: %s\n\n", r.Name)
	b.WriteString("Ingredientes:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", ing)
	}
	b.WriteString("\nPasos:\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	return b.String()
}
