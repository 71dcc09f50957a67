package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Stub stylist gateway
// ---------------------------------------------------------------------------

type stubGateway struct {
	adviceText    string
	adviceSources []ports.Source
	adviceErr     error
	lastPrompt    string
	lastImages    []ports.ImagePayload

	rating    *domain.OutfitRating
	ratingErr error

	chatReply   string
	chatErr     error
	lastHistory []domain.ChatMessage

	imageBytes []byte
	imageErr   error
	genPrompts []string

	editBytes []byte
	editErr   error

	session    *stubChatSession
	sessionErr error
}

func (g *stubGateway) GetAdvice(_ context.Context, prompt string, images []ports.ImagePayload) (*ports.AdviceResult, error) {
	g.lastPrompt = prompt
	g.lastImages = images
	if g.adviceErr != nil {
		return nil, g.adviceErr
	}
	return &ports.AdviceResult{Text: g.adviceText, Sources: g.adviceSources}, nil
}

func (g *stubGateway) GetRating(_ context.Context, images []ports.ImagePayload) (*domain.OutfitRating, error) {
	g.lastImages = images
	if g.ratingErr != nil {
		return nil, g.ratingErr
	}
	r := *g.rating
	return &r, nil
}

func (g *stubGateway) GetRatingChatReply(_ context.Context, _ *domain.OutfitRating, history []domain.ChatMessage, message string) (string, error) {
	g.lastHistory = append([]domain.ChatMessage(nil), history...)
	g.lastPrompt = message
	if g.chatErr != nil {
		return "", g.chatErr
	}
	return g.chatReply, nil
}

func (g *stubGateway) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	g.genPrompts = append(g.genPrompts, prompt)
	if g.imageErr != nil {
		return nil, g.imageErr
	}
	return g.imageBytes, nil
}

func (g *stubGateway) EditImage(_ context.Context, prompt string, image ports.ImagePayload) ([]byte, error) {
	g.lastPrompt = prompt
	g.lastImages = []ports.ImagePayload{image}
	if g.editErr != nil {
		return nil, g.editErr
	}
	return g.editBytes, nil
}

func (g *stubGateway) NewChatSession(_ context.Context) (ports.ChatSession, error) {
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return g.session, nil
}

// stubChatSession replays scripted replies in order.
type stubChatSession struct {
	replies    []*ports.ChatReply
	errs       []error
	calls      int
	toolResult *ports.ToolResult
}

func (s *stubChatSession) next() (*ports.ChatReply, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return &ports.ChatReply{}, nil
}

func (s *stubChatSession) SendMessage(_ context.Context, _ string) (*ports.ChatReply, error) {
	return s.next()
}

func (s *stubChatSession) SendToolResult(_ context.Context, result ports.ToolResult) (*ports.ChatReply, error) {
	s.toolResult = &result
	return s.next()
}

// ---------------------------------------------------------------------------
// In-memory locker and session stores
// ---------------------------------------------------------------------------

type stubLocker struct {
	held       map[string]bool
	acquireErr error
	acquired   []string
	released   []string
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: make(map[string]bool)}
}

func (l *stubLocker) key(userID string, action ports.Action) string {
	return userID + ":" + string(action)
}

func (l *stubLocker) Acquire(_ context.Context, userID string, action ports.Action) (bool, error) {
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	k := l.key(userID, action)
	if l.held[k] {
		return false, nil
	}
	l.held[k] = true
	l.acquired = append(l.acquired, k)
	return true, nil
}

func (l *stubLocker) Release(_ context.Context, userID string, action ports.Action) error {
	k := l.key(userID, action)
	delete(l.held, k)
	l.released = append(l.released, k)
	return nil
}

type memRatingStore struct {
	sessions map[string]*ports.RatingSession
}

func newMemRatingStore() *memRatingStore {
	return &memRatingStore{sessions: make(map[string]*ports.RatingSession)}
}

func (s *memRatingStore) Put(session *ports.RatingSession) { s.sessions[session.ID] = session }

func (s *memRatingStore) Get(id string) (*ports.RatingSession, bool) {
	session, ok := s.sessions[id]
	return session, ok
}

type memStylistStore struct {
	sessions map[string]*ports.StylistSession
}

func newMemStylistStore() *memStylistStore {
	return &memStylistStore{sessions: make(map[string]*ports.StylistSession)}
}

func (s *memStylistStore) Put(session *ports.StylistSession) { s.sessions[session.ID] = session }

func (s *memStylistStore) Get(id string) (*ports.StylistSession, bool) {
	session, ok := s.sessions[id]
	return session, ok
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// pngDataURL builds a syntactically valid PNG data URL. n must be a single
// digit so the payload stays aligned without padding.
func pngDataURL(n int) string {
	return "data:image/png;base64,aW1hZ2U" + strconv.Itoa(n%10)
}

func sampleRating() *domain.OutfitRating {
	return &domain.OutfitRating{
		OverallScore:   8,
		OutfitAnalysis: domain.Analysis{Score: 8, Comments: "Sharp layering and a confident silhouette."},
		FacialAnalysis: domain.Analysis{Score: 7, Comments: "Warm, open expression."},
		Summary:        "A very strong look with 1 standout piece.",
	}
}
