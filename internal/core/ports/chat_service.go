package ports

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// ChatTurn is everything appended to the transcript by one submission:
// the model reply, plus the image message when the tool was invoked.
type ChatTurn struct {
	Messages []domain.ChatMessage
}

// ChatService orchestrates the general stylist conversation with the
// image-generation tool. Unlike rating chat, a failed turn does not roll
// back messages already appended to the transcript.
type ChatService interface {
	StartSession(ctx context.Context, userID string) (string, error)
	SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatTurn, error)
	Transcript(ctx context.Context, userID, sessionID string) ([]domain.ChatMessage, error)
}
