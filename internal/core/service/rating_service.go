package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// RatingService orchestrates the structured rating request and the chat loop
// scoped to it.
type RatingService struct {
	gateway  ports.StylistGateway
	sessions ports.RatingSessionStore
	locks    ports.ActionLocker
	logger   zerolog.Logger
}

func NewRatingService(gateway ports.StylistGateway, sessions ports.RatingSessionStore, locks ports.ActionLocker, logger zerolog.Logger) *RatingService {
	return &RatingService{gateway: gateway, sessions: sessions, locks: locks, logger: logger}
}

func (s *RatingService) RateOutfit(ctx context.Context, userID string, images []string) (*ports.RatingOutcome, error) {
	payloads, err := decodeImages(images)
	if err != nil {
		return nil, err
	}

	release, err := acquireAction(ctx, s.locks, userID, ports.ActionRating)
	if err != nil {
		return nil, err
	}
	defer release()

	rating, err := s.gateway.GetRating(ctx, payloads)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("rating request failed")
		return nil, err
	}

	session := &ports.RatingSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Rating: *rating,
	}
	s.sessions.Put(session)

	s.logger.Info().
		Str("user_id", userID).
		Str("rating_id", session.ID).
		Bool("face_detected", rating.FaceDetected()).
		Msg("outfit rated")

	return &ports.RatingOutcome{RatingID: session.ID, Rating: *rating}, nil
}

// Chat answers one follow-up message about a rating. Each call resends the
// full prior transcript plus the original rating as context. The transcript
// is extended only after a successful turn: a failed turn retracts the
// optimistic user message.
func (s *RatingService) Chat(ctx context.Context, userID, ratingID, message string) (*ports.RatingChatOutcome, error) {
	session, err := s.ratingSession(userID, ratingID)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, domain.ErrMissingPrompt
	}

	release, err := acquireAction(ctx, s.locks, userID, ports.ActionRatingChat)
	if err != nil {
		return nil, err
	}
	defer release()

	// Comparison-seeking messages never reach the backend: the fixed
	// redirection is the reply, deterministically. The turn still runs
	// under the chat flag so transcript writes stay serialised.
	if seeksComparison(message) {
		reply := redirectionReply(session.Rating)
		s.appendTurn(session, message, reply)
		s.logger.Info().Str("rating_id", ratingID).Msg("comparison request redirected")
		return &ports.RatingChatOutcome{Reply: reply, PolicyRedirected: true}, nil
	}

	reply, err := s.gateway.GetRatingChatReply(ctx, &session.Rating, session.Transcript, message)
	if err != nil {
		s.logger.Error().Err(err).Str("rating_id", ratingID).Msg("rating chat turn failed")
		return nil, err
	}

	s.appendTurn(session, message, reply)
	return &ports.RatingChatOutcome{Reply: reply}, nil
}

func (s *RatingService) Transcript(_ context.Context, userID, ratingID string) ([]domain.ChatMessage, error) {
	session, err := s.ratingSession(userID, ratingID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChatMessage, len(session.Transcript))
	copy(out, session.Transcript)
	return out, nil
}

func (s *RatingService) appendTurn(session *ports.RatingSession, message, reply string) {
	session.Transcript = append(session.Transcript,
		domain.ChatMessage{Role: domain.ChatRoleUser, Text: message},
		domain.ChatMessage{Role: domain.ChatRoleModel, Text: reply},
	)
	s.sessions.Put(session)
}

func (s *RatingService) ratingSession(userID, ratingID string) (*ports.RatingSession, error) {
	session, ok := s.sessions.Get(ratingID)
	if !ok || session.UserID != userID {
		return nil, domain.ErrRatingNotFound
	}
	return session, nil
}
