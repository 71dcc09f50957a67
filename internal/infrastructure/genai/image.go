package genai

import (
	"context"
	"time"

	genai "google.golang.org/genai"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// GenerateImage produces one square outfit image from a text prompt.
func (g *Gateway) GenerateImage(ctx context.Context, prompt string) (img []byte, err error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	defer observe("generate_image", time.Now(), &err)

	resp, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			OutputMIMEType: "image/png",
			AspectRatio:    "1:1",
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, domain.ErrNoImageGenerated
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// EditImage submits one image plus an edit instruction and requires an
// image-typed response.
func (g *Gateway) EditImage(ctx context.Context, prompt string, image ports.ImagePayload) (img []byte, err error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	defer observe("edit_image", time.Now(), &err)

	parts, err := imageParts([]ports.ImagePayload{image})
	if err != nil {
		return nil, err
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.EditModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, domain.ErrNoImageReturned
}
