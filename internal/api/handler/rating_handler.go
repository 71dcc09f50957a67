package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// RatingHandler handles HTTP requests for outfit rating and rating chat.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type rateOutfitRequest struct {
	Images []string `json:"images" validate:"required,min=1,max=5"`
}

type analysisResponse struct {
	Score    float64 `json:"score"`
	Comments string  `json:"comments"`
}

type ratingResponse struct {
	RatingID       string           `json:"rating_id"`
	OverallScore   float64          `json:"overall_score"`
	OutfitAnalysis analysisResponse `json:"outfit_analysis"`
	FacialAnalysis analysisResponse `json:"facial_analysis"`
	FaceDetected   bool             `json:"face_detected"`
	Summary        string           `json:"summary"`
}

type ratingChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ratingChatResponse struct {
	Reply            string `json:"reply"`
	PolicyRedirected bool   `json:"policy_redirected"`
}

type messageResponse struct {
	Role         string `json:"role"`
	Text         string `json:"text,omitempty"`
	Image        string `json:"image,omitempty"`
	ImageLoading bool   `json:"image_loading,omitempty"`
}

type transcriptResponse struct {
	Messages []messageResponse `json:"messages"`
}

// Rate scores the uploaded outfit photos and opens a rating chat session.
//
// @Summary      Rate outfit photos
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rateOutfitRequest  true  "1-5 outfit photos as data URLs"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/ratings [post]
func (h *RatingHandler) Rate(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req rateOutfitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	outcome, err := h.service.RateOutfit(c.Request().Context(), uid, req.Images)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionRating)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toRatingResponse(outcome.RatingID, outcome.Rating))
}

// Chat sends a follow-up message about a previous rating.
//
// @Summary      Discuss a rating with the stylist
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Rating ID"
// @Param        body  body      ratingChatRequest  true  "Chat message"
// @Success      200   {object}  ratingChatResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/ratings/{id}/chat [post]
func (h *RatingHandler) Chat(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ratingChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	outcome, err := h.service.Chat(c.Request().Context(), uid, c.Param("id"), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionRatingChat)).Inc()
		}
		return err
	}

	if outcome.PolicyRedirected {
		metrics.PolicyRedirectsTotal.Inc()
	}

	return c.JSON(http.StatusOK, ratingChatResponse{
		Reply:            outcome.Reply,
		PolicyRedirected: outcome.PolicyRedirected,
	})
}

// Transcript returns the full rating chat history.
//
// @Summary      Get a rating chat transcript
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Rating ID"
// @Success      200  {object}  transcriptResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/ratings/{id}/chat [get]
func (h *RatingHandler) Transcript(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	messages, err := h.service.Transcript(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transcriptResponse{Messages: toMessageResponses(messages)})
}

func toRatingResponse(id string, r domain.OutfitRating) ratingResponse {
	return ratingResponse{
		RatingID:     id,
		OverallScore: r.OverallScore,
		OutfitAnalysis: analysisResponse{
			Score:    r.OutfitAnalysis.Score,
			Comments: r.OutfitAnalysis.Comments,
		},
		FacialAnalysis: analysisResponse{
			Score:    r.FacialAnalysis.Score,
			Comments: r.FacialAnalysis.Comments,
		},
		FaceDetected: r.FaceDetected(),
		Summary:      r.Summary,
	}
}

func toMessageResponses(messages []domain.ChatMessage) []messageResponse {
	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageResponse{
			Role:         string(m.Role),
			Text:         m.Text,
			Image:        m.Image,
			ImageLoading: m.ImageLoading,
		})
	}
	return out
}
