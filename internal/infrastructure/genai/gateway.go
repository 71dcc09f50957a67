// Package genai implements the stylist gateway against the Gemini API.
// Each call is stateless except for chat sessions, where turn history is
// held by the SDK. Backend errors propagate unchanged to the caller.
package genai

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/rs/zerolog"
	genai "google.golang.org/genai"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
	"github.com/fashio-ai/styling-api/internal/infrastructure/config"
)

// Gateway is a thin wrapper around the official genai client.
type Gateway struct {
	client *genai.Client
	cfg    config.GeminiConfig
	logger zerolog.Logger
}

// New builds the gateway. A missing API key is not fatal here: the service
// starts, and every AI operation fails with domain.ErrAPIKeyMissing until
// the key is provided.
func New(ctx context.Context, cfg config.GeminiConfig, logger zerolog.Logger) (*Gateway, error) {
	g := &Gateway{cfg: cfg, logger: logger}
	if cfg.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; AI operations are disabled")
		return g, nil
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.client = cli
	return g, nil
}

// ensureClient guards every operation against a missing credential.
func (g *Gateway) ensureClient() error {
	if g.client == nil {
		return domain.ErrAPIKeyMissing
	}
	return nil
}

// observe records one backend round trip in the Prometheus metrics. It
// takes a pointer so a deferred call sees the final error value.
func observe(kind string, start time.Time, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = "error"
	}
	metrics.AIRequestsTotal.WithLabelValues(kind, outcome).Inc()
	metrics.AIRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// imageParts converts decoded payloads into inline data parts.
func imageParts(images []ports.ImagePayload) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		raw, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, domain.ErrInvalidImage
		}
		parts = append(parts, genai.NewPartFromBytes(raw, img.MIMEType))
	}
	return parts, nil
}
