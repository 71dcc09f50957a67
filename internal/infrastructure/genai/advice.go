package genai

import (
	"context"
	"time"

	genai "google.golang.org/genai"

	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// GetAdvice submits all images plus the user's question, with web search
// enabled so the stylist can ground its advice in current trends.
func (g *Gateway) GetAdvice(ctx context.Context, prompt string, images []ports.ImagePayload) (result *ports.AdviceResult, err error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	defer observe("advice", time.Now(), &err)

	parts, err := imageParts(images)
	if err != nil {
		return nil, err
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(adviceInstruction, genai.RoleUser),
			Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	)
	if err != nil {
		return nil, err
	}

	return &ports.AdviceResult{
		Text:    resp.Text(),
		Sources: webSources(resp),
	}, nil
}

// webSources extracts grounding citations, keeping only entries tagged as
// web sources.
func webSources(resp *genai.GenerateContentResponse) []ports.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []ports.Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		sources = append(sources, ports.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}
