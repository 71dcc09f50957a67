package ports

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// RatingOutcome is returned after rating a set of outfit photos. The
// RatingID scopes the follow-up chat to this rating.
type RatingOutcome struct {
	RatingID string
	Rating   domain.OutfitRating
}

// RatingChatOutcome is one reply in a rating-scoped conversation.
// PolicyRedirected is true when the message asked for a quantitative social
// comparison and was answered with the fixed redirection instead of the model.
type RatingChatOutcome struct {
	Reply            string
	PolicyRedirected bool
}

// RatingService orchestrates the structured-score request and the chat loop
// scoped to it. A chat turn that fails leaves the transcript untouched; the
// optimistic user message is retracted.
type RatingService interface {
	RateOutfit(ctx context.Context, userID string, images []string) (*RatingOutcome, error)
	Chat(ctx context.Context, userID, ratingID, message string) (*RatingChatOutcome, error)
	Transcript(ctx context.Context, userID, ratingID string) ([]domain.ChatMessage, error)
}
