package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// ImageHandler handles standalone image generation and editing.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

type generateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type editImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Image  string `json:"image" validate:"required"`
}

// Generate renders a prompt into a fresh outfit image.
//
// @Summary      Generate an image from a prompt
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateImageRequest  true  "Image prompt"
// @Success      200   {object}  imageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/images/generate [post]
func (h *ImageHandler) Generate(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req generateImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.service.Generate(c.Request().Context(), uid, req.Prompt)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionGenerate)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, imageResponse{Image: image})
}

// Edit applies an instruction to an existing image.
//
// @Summary      Edit an image with an instruction
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editImageRequest  true  "Edit instruction and source image as data URL"
// @Success      200   {object}  imageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/images/edit [post]
func (h *ImageHandler) Edit(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req editImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.service.Edit(c.Request().Context(), uid, req.Prompt, req.Image)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionEdit)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, imageResponse{Image: image})
}
