package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// CollectionHandler handles HTTP requests for the saved-outfit collection.
type CollectionHandler struct {
	service ports.CollectionService
}

func NewCollectionHandler(service ports.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

type saveOutfitRequest struct {
	AdviceID       string `json:"advice_id" validate:"required"`
	Image          string `json:"image" validate:"required"`
	Prompt         string `json:"prompt" validate:"required"`
	Advice         string `json:"advice" validate:"required"`
	GeneratedImage string `json:"generated_image,omitempty"`
}

type savedOutfitResponse struct {
	ID             string `json:"id"`
	AdviceID       string `json:"advice_id"`
	Image          string `json:"image"`
	Prompt         string `json:"prompt"`
	Advice         string `json:"advice"`
	GeneratedImage string `json:"generated_image,omitempty"`
	SavedAt        string `json:"saved_at"`
}

type listOutfitsResponse struct {
	Outfits []savedOutfitResponse `json:"outfits"`
}

// Save persists an advice result into the user's collection. Saving the
// same advice result twice returns the existing entry with 200 instead
// of creating a duplicate.
//
// @Summary      Save an advice result to the collection
// @Tags         outfits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveOutfitRequest  true  "Advice result to save"
// @Success      200   {object}  savedOutfitResponse
// @Success      201   {object}  savedOutfitResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/outfits [post]
func (h *CollectionHandler) Save(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req saveOutfitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Save(c.Request().Context(), ports.SaveOutfitInput{
		UserID:         uid,
		AdviceID:       req.AdviceID,
		Image:          req.Image,
		Prompt:         req.Prompt,
		Advice:         req.Advice,
		GeneratedImage: req.GeneratedImage,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	outcome := "created"
	if result.AlreadyExisted {
		status = http.StatusOK
		outcome = "replayed"
	}
	metrics.OutfitsSavedTotal.WithLabelValues(outcome).Inc()

	return c.JSON(status, toSavedOutfitResponse(result.Outfit))
}

// List returns the user's saved outfits, newest first.
//
// @Summary      List saved outfits
// @Tags         outfits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listOutfitsResponse
// @Router       /v1/outfits [get]
func (h *CollectionHandler) List(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	outfits, err := h.service.List(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	out := make([]savedOutfitResponse, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, toSavedOutfitResponse(o))
	}

	return c.JSON(http.StatusOK, listOutfitsResponse{Outfits: out})
}

// Delete removes one saved outfit from the collection.
//
// @Summary      Delete a saved outfit
// @Tags         outfits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Saved outfit ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/outfits/{id} [delete]
func (h *CollectionHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func toSavedOutfitResponse(o *domain.SavedOutfit) savedOutfitResponse {
	return savedOutfitResponse{
		ID:             o.ID,
		AdviceID:       o.AdviceID,
		Image:          o.Image,
		Prompt:         o.Prompt,
		Advice:         o.Advice,
		GeneratedImage: o.GeneratedImage,
		SavedAt:        o.SavedAt.UTC().Format(time.RFC3339),
	}
}
