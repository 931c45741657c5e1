package challenges

import (
	"context"
	"fmt"

	"github.com/example/tvorets/internal/database"
	"github.com/example/tvorets/pkg/models"
)

// KeyCatalog holds an imported catalog that replaces the built-in one.
// It is configuration, so a progress reset leaves it alone.
const KeyCatalog = "@ya_tvorets_challenge_catalog_v1"

// LoadCatalog returns the imported catalog, or the built-in one when none is stored
func LoadCatalog(ctx context.Context, store database.Store) (*Catalog, error) {
	var defs []models.ChallengeDefinition
	ok, err := database.GetJSON(ctx, store, KeyCatalog, &defs)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge catalog: %w", err)
	}
	if !ok {
		return DefaultCatalog(), nil
	}
	c, err := NewCatalog(defs)
	if err != nil {
		return nil, fmt.Errorf("stored challenge catalog is invalid: %w", err)
	}
	return c, nil
}

// SaveCatalog persists c as the active catalog
func SaveCatalog(ctx context.Context, store database.Store, c *Catalog) error {
	if err := database.SetJSON(ctx, store, KeyCatalog, c.All()); err != nil {
		return fmt.Errorf("failed to save challenge catalog: %w", err)
	}
	return nil
}

// ClearCatalog drops the imported catalog so the built-in one is used again
func ClearCatalog(ctx context.Context, store database.Store) error {
	if err := store.Remove(ctx, KeyCatalog); err != nil {
		return fmt.Errorf("failed to clear challenge catalog: %w", err)
	}
	return nil
}
