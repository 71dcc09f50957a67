package domain

import "errors"

var ErrSessionNotFound = errors.New("chat session not found")

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one entry in an append-only conversation transcript.
// Transcripts live in memory only and are never persisted.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
	// Image holds a data URL when the model produced an outfit visualization.
	Image string `json:"image,omitempty"`
	// ImageLoading marks a placeholder for an image that has not arrived yet.
	// A failed generation leaves the placeholder in this state.
	ImageLoading bool `json:"image_loading,omitempty"`
}
