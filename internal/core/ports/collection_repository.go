package ports

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// CollectionRepository defines persistence operations for saved outfits.
// Every operation is scoped to a single user namespace.
type CollectionRepository interface {
	Insert(ctx context.Context, outfit *domain.SavedOutfit) error
	// FindByAdviceID retrieves a previously saved entry for the same advice
	// result, enabling idempotent saves.
	FindByAdviceID(ctx context.Context, userID, adviceID string) (*domain.SavedOutfit, error)
	// ListByUser returns the user's outfits ordered by saved_at descending.
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedOutfit, error)
	// Delete removes exactly one entry by id. Returns domain.ErrOutfitNotFound
	// when the id does not exist in the user's namespace.
	Delete(ctx context.Context, userID, outfitID string) error
}
