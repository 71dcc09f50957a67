package genai

import (
	"context"
	"encoding/json"
	"time"

	genai "google.golang.org/genai"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// ratingSchema constrains the rating response so the raw text can be parsed
// directly into the value object.
var ratingSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overallScore": {Type: genai.TypeNumber, Description: "Overall look score from 0 to 10."},
		"outfitAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeNumber},
				"comments": {Type: genai.TypeString},
			},
			Required: []string{"score", "comments"},
		},
		"facialAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeNumber, Description: "0 when no face is visible."},
				"comments": {Type: genai.TypeString},
			},
			Required: []string{"score", "comments"},
		},
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"overallScore", "outfitAnalysis", "facialAnalysis", "summary"},
}

// GetRating requests a schema-constrained rating for the outfit photos.
func (g *Gateway) GetRating(ctx context.Context, images []ports.ImagePayload) (rating *domain.OutfitRating, err error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	defer observe("rating", time.Now(), &err)

	parts, err := imageParts(images)
	if err != nil {
		return nil, err
	}
	parts = append(parts, genai.NewPartFromText("Rate this outfit."))

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(ratingInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    ratingSchema,
		},
	)
	if err != nil {
		return nil, err
	}

	return parseRating([]byte(resp.Text()))
}

// ratingDoc mirrors OutfitRating with pointer fields so missing keys are
// distinguishable from zero values.
type ratingDoc struct {
	OverallScore   *float64 `json:"overallScore"`
	OutfitAnalysis *struct {
		Score    *float64 `json:"score"`
		Comments *string  `json:"comments"`
	} `json:"outfitAnalysis"`
	FacialAnalysis *struct {
		Score    *float64 `json:"score"`
		Comments *string  `json:"comments"`
	} `json:"facialAnalysis"`
	Summary *string `json:"summary"`
}

// parseRating decodes the model's JSON and rejects anything short of the
// full required field set.
func parseRating(raw []byte) (*domain.OutfitRating, error) {
	var doc ratingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.ErrMalformedRating
	}
	if doc.OverallScore == nil || doc.Summary == nil ||
		doc.OutfitAnalysis == nil || doc.OutfitAnalysis.Score == nil || doc.OutfitAnalysis.Comments == nil ||
		doc.FacialAnalysis == nil || doc.FacialAnalysis.Score == nil || doc.FacialAnalysis.Comments == nil {
		return nil, domain.ErrMalformedRating
	}

	return &domain.OutfitRating{
		OverallScore: *doc.OverallScore,
		OutfitAnalysis: domain.Analysis{
			Score:    *doc.OutfitAnalysis.Score,
			Comments: *doc.OutfitAnalysis.Comments,
		},
		FacialAnalysis: domain.Analysis{
			Score:    *doc.FacialAnalysis.Score,
			Comments: *doc.FacialAnalysis.Comments,
		},
		Summary: *doc.Summary,
	}, nil
}

// GetRatingChatReply answers one follow-up message about a rating. The full
// prior transcript plus the rating travel with every call; rating chat has
// no persistent backend session.
func (g *Gateway) GetRatingChatReply(ctx context.Context, rating *domain.OutfitRating, history []domain.ChatMessage, message string) (reply string, err error) {
	if err := g.ensureClient(); err != nil {
		return "", err
	}
	defer observe("rating_chat", time.Now(), &err)

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == domain.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(ratingChatInstruction(rating), genai.RoleUser),
		},
	)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
