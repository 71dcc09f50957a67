package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// AdviceHandler handles HTTP requests for the styling-advice flow.
type AdviceHandler struct {
	service ports.AdviceService
}

func NewAdviceHandler(service ports.AdviceService) *AdviceHandler {
	return &AdviceHandler{service: service}
}

type adviceRequest struct {
	Prompt string   `json:"prompt" validate:"required"`
	Images []string `json:"images" validate:"required,min=1,max=5"`
}

type sourceResponse struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type adviceResponse struct {
	AdviceID            string           `json:"advice_id"`
	Advice              string           `json:"advice"`
	VisualizationPrompt string           `json:"visualization_prompt,omitempty"`
	Sources             []sourceResponse `json:"sources,omitempty"`
}

type visualizeRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type imageResponse struct {
	Image string `json:"image"`
}

// GetAdvice runs the advice pipeline over the uploaded outfit photos.
//
// @Summary      Get styling advice for outfit photos
// @Tags         advice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Prompt and 1-5 outfit photos as data URLs"
// @Success      200   {object}  adviceResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/advice [post]
func (h *AdviceHandler) GetAdvice(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req adviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	outcome, err := h.service.GetAdvice(c.Request().Context(), ports.AdviceInput{
		UserID: uid,
		Prompt: req.Prompt,
		Images: req.Images,
	})
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionAdvice)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, adviceResponse{
		AdviceID:            outcome.AdviceID,
		Advice:              outcome.Advice,
		VisualizationPrompt: outcome.VisualizationPrompt,
		Sources:             toSourceResponses(outcome.Sources),
	})
}

// Visualize renders a visualization prompt into an outfit image.
//
// @Summary      Render a visualization prompt into an image
// @Tags         advice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      visualizeRequest  true  "Visualization prompt"
// @Success      200   {object}  imageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/advice/visualize [post]
func (h *AdviceHandler) Visualize(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req visualizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.service.Visualize(c.Request().Context(), uid, req.Prompt)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionGenerate)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, imageResponse{Image: image})
}

func toSourceResponses(sources []ports.Source) []sourceResponse {
	if len(sources) == 0 {
		return nil
	}
	out := make([]sourceResponse, 0, len(sources))
	for _, s := range sources {
		out = append(out, sourceResponse{Title: s.Title, URI: s.URI})
	}
	return out
}
