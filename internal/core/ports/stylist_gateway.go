package ports

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

// ImagePayload is a decoded upload: the raw base64 payload plus its media type.
// It is transient; only the data URL form is ever persisted.
type ImagePayload struct {
	MIMEType string
	Data     string
}

// Source is a web citation the model attached through its retrieval capability.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AdviceResult carries the raw advice text (which may embed a visualization
// directive) and any web citations. Splitting out the directive is the
// caller's job, not the gateway's.
type AdviceResult struct {
	Text    string
	Sources []Source
}

// ToolCall is a model-initiated request to execute a named local action
// mid-conversation.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ChatReply is one turn from a conversational session: plain text, tool
// calls, or both.
type ChatReply struct {
	Text      string
	ToolCalls []ToolCall
}

// ToolResult reports the outcome of a tool call back into the session so the
// model can produce a closing remark.
type ToolResult struct {
	CallID  string
	Name    string
	Success bool
	Message string
}

// ChatSession is a stateful conversation handle. Turn history is preserved
// by the backend for the lifetime of the session.
type ChatSession interface {
	SendMessage(ctx context.Context, text string) (*ChatReply, error)
	SendToolResult(ctx context.Context, result ToolResult) (*ChatReply, error)
}

// StylistGateway is the boundary to the external generative backend. It is
// stateless per call except for NewChatSession. Transport and backend
// failures propagate unchanged, with no retries and no local messaging; the calling
// service owns user-facing degradation.
type StylistGateway interface {
	// GetAdvice submits all images plus the user's question and returns the
	// model's styling advice with optional web citations.
	GetAdvice(ctx context.Context, prompt string, images []ImagePayload) (*AdviceResult, error)

	// GetRating requests a schema-constrained outfit rating for the images.
	// Returns domain.ErrMalformedRating when the response cannot be parsed
	// into the full value object.
	GetRating(ctx context.Context, images []ImagePayload) (*domain.OutfitRating, error)

	// GetRatingChatReply answers one follow-up message about a rating. The
	// original rating and the full prior transcript are resent on every call;
	// there is no persistent backend session for rating chat.
	GetRatingChatReply(ctx context.Context, rating *domain.OutfitRating, history []domain.ChatMessage, message string) (string, error)

	// GenerateImage produces a single square image from a text prompt.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)

	// EditImage applies an instruction to one image and returns the edited
	// image bytes.
	EditImage(ctx context.Context, prompt string, image ImagePayload) ([]byte, error)

	// NewChatSession opens a free-form stylist conversation configured with
	// the generateOutfitImage tool.
	NewChatSession(ctx context.Context) (ChatSession, error)
}
