package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// ShareDedup suppresses repeated share notifications backed by Redis.
// Key format: share:<recipe_id>:<recipient>
type ShareDedup struct {
	client *redis.Client
}

// NewShareDedup creates a ShareDedup wrapping the given Redis client.
func NewShareDedup(client *redis.Client) *ShareDedup {
	return &ShareDedup{client: client}
}

// IsDuplicate reports whether this recipe was already sent to this recipient
// within the dedup window.
func (d *ShareDedup) IsDuplicate(ctx context.Context, recipeID, recipient string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(recipeID, recipient)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the notification went out (expires after dedupTTL).
func (d *ShareDedup) Mark(ctx context.Context, recipeID, recipient string) error {
	return d.client.Set(ctx, d.key(recipeID, recipient), "1", dedupTTL).Err()
}

func (d *ShareDedup) key(recipeID, recipient string) string {
	return fmt.Sprintf("share:%s:%s", recipeID, strings.ToLower(recipient))
}
