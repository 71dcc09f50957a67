package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
	"github.com/fashio-ai/styling-api/internal/pkg/dataurl"
)

// generateOutfitImageTool is the single capability the stylist session may
// invoke instead of answering directly.
const generateOutfitImageTool = "generateOutfitImage"

// ChatService runs the general stylist conversation. One turn appends the
// user message optimistically and sends it. A plain reply is appended as
// text. When the model requests the image tool instead, the turn appends a
// loading placeholder, generates the image, swaps it in, reports the tool
// result back into the session and appends the closing remark.
//
// Failure at any step surfaces the error and leaves the transcript as it
// was at that point; nothing is rolled back.
type ChatService struct {
	gateway  ports.StylistGateway
	sessions ports.StylistSessionStore
	locks    ports.ActionLocker
	logger   zerolog.Logger
}

func NewChatService(gateway ports.StylistGateway, sessions ports.StylistSessionStore, locks ports.ActionLocker, logger zerolog.Logger) *ChatService {
	return &ChatService{gateway: gateway, sessions: sessions, locks: locks, logger: logger}
}

func (s *ChatService) StartSession(ctx context.Context, userID string) (string, error) {
	session, err := s.gateway.NewChatSession(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to open chat session")
		return "", err
	}

	state := &ports.StylistSession{
		ID:      uuid.NewString(),
		UserID:  userID,
		Session: session,
	}
	s.sessions.Put(state)
	return state.ID, nil
}

func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID, message string) (*ports.ChatTurn, error) {
	state, err := s.stylistSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, domain.ErrMissingPrompt
	}

	release, err := acquireAction(ctx, s.locks, userID, ports.ActionChat)
	if err != nil {
		return nil, err
	}
	defer release()

	turnStart := len(state.Transcript)
	s.append(state, domain.ChatMessage{Role: domain.ChatRoleUser, Text: message})

	reply, err := state.Session.SendMessage(ctx, message)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("chat turn failed")
		return nil, err
	}

	if len(reply.ToolCalls) > 0 {
		// Only the first tool call is honoured; any further ones are ignored.
		if err := s.handleToolCall(ctx, state, reply.ToolCalls[0]); err != nil {
			return nil, err
		}
	} else if reply.Text != "" {
		s.append(state, domain.ChatMessage{Role: domain.ChatRoleModel, Text: reply.Text})
	}

	return s.turnSince(state, turnStart), nil
}

func (s *ChatService) Transcript(_ context.Context, userID, sessionID string) ([]domain.ChatMessage, error) {
	state, err := s.stylistSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChatMessage, len(state.Transcript))
	copy(out, state.Transcript)
	return out, nil
}

func (s *ChatService) handleToolCall(ctx context.Context, state *ports.StylistSession, call ports.ToolCall) error {
	if call.Name != generateOutfitImageTool {
		return nil
	}
	description, _ := call.Args["description"].(string)

	placeholder := domain.ChatMessage{
		Role:         domain.ChatRoleModel,
		Text:         fmt.Sprintf("Generating an image of: %q", description),
		ImageLoading: true,
	}
	s.append(state, placeholder)
	placeholderIdx := len(state.Transcript) - 1

	img, err := s.gateway.GenerateImage(ctx, description)
	if err != nil {
		// Placeholder stays in its loading state.
		s.logger.Error().Err(err).Str("session_id", state.ID).Msg("tool image generation failed")
		return err
	}

	state.Transcript[placeholderIdx] = domain.ChatMessage{
		Role:  domain.ChatRoleModel,
		Image: dataurl.Encode("image/png", img),
	}
	s.sessions.Put(state)

	closing, err := state.Session.SendToolResult(ctx, ports.ToolResult{
		CallID:  call.ID,
		Name:    call.Name,
		Success: true,
		Message: "Image generated successfully.",
	})
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", state.ID).Msg("tool result report failed")
		return err
	}
	if closing.Text != "" {
		s.append(state, domain.ChatMessage{Role: domain.ChatRoleModel, Text: closing.Text})
	}
	return nil
}

func (s *ChatService) append(state *ports.StylistSession, msg domain.ChatMessage) {
	state.Transcript = append(state.Transcript, msg)
	s.sessions.Put(state)
}

func (s *ChatService) turnSince(state *ports.StylistSession, start int) *ports.ChatTurn {
	msgs := make([]domain.ChatMessage, len(state.Transcript)-start)
	copy(msgs, state.Transcript[start:])
	return &ports.ChatTurn{Messages: msgs}
}

func (s *ChatService) stylistSession(userID, sessionID string) (*ports.StylistSession, error) {
	state, ok := s.sessions.Get(sessionID)
	if !ok || state.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	return state, nil
}
