package ports

import "github.com/fashio-ai/styling-api/internal/core/domain"

// RatingSession holds a rating and the transcript of the chat scoped to it.
// Lives in memory only; evicted sessions are simply gone.
type RatingSession struct {
	ID         string
	UserID     string
	Rating     domain.OutfitRating
	Transcript []domain.ChatMessage
}

// StylistSession holds a live gateway conversation plus its visible transcript.
type StylistSession struct {
	ID         string
	UserID     string
	Session    ChatSession
	Transcript []domain.ChatMessage
}

// RatingSessionStore keeps rating sessions between requests.
type RatingSessionStore interface {
	Put(s *RatingSession)
	Get(id string) (*RatingSession, bool)
}

// StylistSessionStore keeps chat sessions between requests.
type StylistSessionStore interface {
	Put(s *StylistSession)
	Get(id string) (*StylistSession, bool)
}
