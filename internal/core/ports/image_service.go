package ports

import "context"

// ImageService exposes standalone image generation and editing.
// Results are data URLs ready for display or saving.
type ImageService interface {
	Generate(ctx context.Context, userID, prompt string) (string, error)
	Edit(ctx context.Context, userID, prompt, image string) (string, error)
}
