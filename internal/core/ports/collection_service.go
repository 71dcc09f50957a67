package ports

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// SaveOutfitInput carries everything needed to persist an advice result.
// Image is the first uploaded photo (the representative thumbnail).
type SaveOutfitInput struct {
	UserID         string
	AdviceID       string
	Image          string
	Prompt         string
	Advice         string
	GeneratedImage string
}

// SaveOutfitResult is returned after a save. AlreadyExisted is true when the
// advice result had been saved before; no duplicate entry is created.
type SaveOutfitResult struct {
	Outfit         *domain.SavedOutfit
	AlreadyExisted bool
}

// CollectionService manages a user's saved-outfit collection.
type CollectionService interface {
	Save(ctx context.Context, input SaveOutfitInput) (*SaveOutfitResult, error)
	List(ctx context.Context, userID string) ([]*domain.SavedOutfit, error)
	Delete(ctx context.Context, userID, outfitID string) error
}
