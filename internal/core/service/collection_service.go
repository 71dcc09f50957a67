package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// CollectionService manages per-user saved-outfit collections.
type CollectionService struct {
	repo   ports.CollectionRepository
	logger zerolog.Logger
}

func NewCollectionService(repo ports.CollectionRepository, logger zerolog.Logger) *CollectionService {
	return &CollectionService{repo: repo, logger: logger}
}

// Save persists an advice result. Saving the same result twice is an
// idempotent replay: the existing entry is returned and no duplicate is
// created.
func (s *CollectionService) Save(ctx context.Context, input ports.SaveOutfitInput) (*ports.SaveOutfitResult, error) {
	existing, err := s.repo.FindByAdviceID(ctx, input.UserID, input.AdviceID)
	if err != nil && !errors.Is(err, domain.ErrOutfitNotFound) {
		return nil, err
	}
	if existing != nil {
		s.logger.Info().
			Str("user_id", input.UserID).
			Str("advice_id", input.AdviceID).
			Str("outfit_id", existing.ID).
			Msg("idempotent save replay")
		return &ports.SaveOutfitResult{Outfit: existing, AlreadyExisted: true}, nil
	}

	outfit := &domain.SavedOutfit{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		AdviceID:       input.AdviceID,
		Image:          input.Image,
		Prompt:         input.Prompt,
		Advice:         input.Advice,
		GeneratedImage: input.GeneratedImage,
		SavedAt:        time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, outfit); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to save outfit")
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("outfit_id", outfit.ID).Msg("outfit saved")
	return &ports.SaveOutfitResult{Outfit: outfit}, nil
}

func (s *CollectionService) List(ctx context.Context, userID string) ([]*domain.SavedOutfit, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CollectionService) Delete(ctx context.Context, userID, outfitID string) error {
	if err := s.repo.Delete(ctx, userID, outfitID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("outfit_id", outfitID).Msg("outfit deleted")
	return nil
}
