package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
	"github.com/fashio-ai/styling-api/internal/pkg/dataurl"
)

// VisualizationMarker is the directive token the stylist appends when it
// offers an outfit description suitable for image generation. Everything
// before the marker is advice; everything after it is the visualization
// prompt.
const VisualizationMarker = "VISUALIZE:"

// AdviceService orchestrates the accumulating multi-image advice pipeline.
type AdviceService struct {
	gateway ports.StylistGateway
	locks   ports.ActionLocker
	logger  zerolog.Logger
}

func NewAdviceService(gateway ports.StylistGateway, locks ports.ActionLocker, logger zerolog.Logger) *AdviceService {
	return &AdviceService{gateway: gateway, locks: locks, logger: logger}
}

func (s *AdviceService) GetAdvice(ctx context.Context, input ports.AdviceInput) (*ports.AdviceOutcome, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, domain.ErrMissingPrompt
	}
	payloads, err := decodeImages(input.Images)
	if err != nil {
		return nil, err
	}

	release, err := acquireAction(ctx, s.locks, input.UserID, ports.ActionAdvice)
	if err != nil {
		return nil, err
	}
	defer release()

	result, err := s.gateway.GetAdvice(ctx, input.Prompt, payloads)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("advice request failed")
		return nil, err
	}

	advice, vizPrompt := splitVisualization(result.Text)
	outcome := &ports.AdviceOutcome{
		AdviceID:            uuid.NewString(),
		Advice:              advice,
		VisualizationPrompt: vizPrompt,
		Sources:             result.Sources,
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Str("advice_id", outcome.AdviceID).
		Int("images", len(payloads)).
		Bool("visualization_offered", vizPrompt != "").
		Msg("advice generated")

	return outcome, nil
}

// Visualize renders the (possibly user-edited) visualization prompt into an
// image data URL.
func (s *AdviceService) Visualize(ctx context.Context, userID, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ErrMissingPrompt
	}

	release, err := acquireAction(ctx, s.locks, userID, ports.ActionGenerate)
	if err != nil {
		return "", err
	}
	defer release()

	img, err := s.gateway.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("visualization failed")
		return "", err
	}
	return dataurl.Encode("image/png", img), nil
}

// splitVisualization partitions raw advice text on the first occurrence of
// the marker. Without a marker the whole text is advice and the
// visualization prompt is empty.
func splitVisualization(text string) (advice, vizPrompt string) {
	before, after, found := strings.Cut(text, VisualizationMarker)
	if !found {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// decodeImages validates and decodes 1–5 data URLs into gateway payloads.
// The original slice is never mutated.
func decodeImages(images []string) ([]ports.ImagePayload, error) {
	if len(images) == 0 {
		return nil, domain.ErrNoImages
	}
	if len(images) > domain.MaxOutfitImages {
		return nil, domain.ErrTooManyImages
	}
	payloads := make([]ports.ImagePayload, 0, len(images))
	for i, img := range images {
		mimeType, data, err := dataurl.Decode(img)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", domain.ErrInvalidImage, i, err)
		}
		payloads = append(payloads, ports.ImagePayload{MIMEType: mimeType, Data: data})
	}
	return payloads, nil
}
