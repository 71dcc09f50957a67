package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
	"github.com/fashio-ai/styling-api/internal/pkg/dataurl"
)

// ImageService exposes standalone outfit image generation and editing.
type ImageService struct {
	gateway ports.StylistGateway
	locks   ports.ActionLocker
	logger  zerolog.Logger
}

func NewImageService(gateway ports.StylistGateway, locks ports.ActionLocker, logger zerolog.Logger) *ImageService {
	return &ImageService{gateway: gateway, locks: locks, logger: logger}
}

func (s *ImageService) Generate(ctx context.Context, userID, prompt string) (string, error) {
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
		s.logger.Error().Err(err).Str("user_id", userID).Msg("image generation failed")
		return "", err
	}
	return dataurl.Encode("image/png", img), nil
}

func (s *ImageService) Edit(ctx context.Context, userID, prompt, image string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ErrMissingPrompt
	}
	mimeType, data, err := dataurl.Decode(image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	release, err := acquireAction(ctx, s.locks, userID, ports.ActionEdit)
	if err != nil {
		return "", err
	}
	defer release()

	img, err := s.gateway.EditImage(ctx, prompt, ports.ImagePayload{MIMEType: mimeType, Data: data})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("image edit failed")
		return "", err
	}
	return dataurl.Encode("image/png", img), nil
}
