package ports

import "context"

// AdviceInput carries a styling question plus 1–5 clothing photos as data URLs.
type AdviceInput struct {
	UserID string
	Prompt string
	Images []string
}

// AdviceOutcome is the parsed result of one advice request. AdviceID
// identifies the result for later idempotent saving to the collection.
type AdviceOutcome struct {
	AdviceID            string
	Advice              string
	VisualizationPrompt string
	Sources             []Source
}

// AdviceService orchestrates the multi-image advice pipeline.
type AdviceService interface {
	// GetAdvice encodes the images, queries the stylist and partitions the
	// response into advice text and an optional visualization prompt.
	GetAdvice(ctx context.Context, input AdviceInput) (*AdviceOutcome, error)

	// Visualize renders a (possibly user-edited) visualization prompt into an
	// image, returned as a data URL.
	Visualize(ctx context.Context, userID, prompt string) (string, error)
}
