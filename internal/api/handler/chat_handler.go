package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fashio-ai/styling-api/internal/api/metrics"
	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// ChatHandler handles HTTP requests for the general stylist chat.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
}

type chatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatTurnResponse struct {
	Messages []messageResponse `json:"messages"`
}

// StartSession opens a new stylist chat session.
//
// @Summary      Start a stylist chat session
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  startSessionResponse
// @Failure      503  {object}  map[string]string
// @Router       /v1/chat/sessions [post]
func (h *ChatHandler) StartSession(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	sessionID, err := h.service.StartSession(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, startSessionResponse{SessionID: sessionID})
}

// SendMessage submits a message to a chat session and returns the
// messages appended by the turn, including any generated image.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Session ID"
// @Param        body  body      chatMessageRequest  true  "Chat message"
// @Success      200   {object}  chatTurnResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/chat/sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req chatMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	turn, err := h.service.SendMessage(c.Request().Context(), uid, c.Param("id"), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrActionInProgress) {
			metrics.ActionConflictsTotal.WithLabelValues(string(ports.ActionChat)).Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, chatTurnResponse{Messages: toMessageResponses(turn.Messages)})
}

// Transcript returns the full session history.
//
// @Summary      Get a chat session transcript
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Session ID"
// @Success      200  {object}  transcriptResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/chat/sessions/{id}/messages [get]
func (h *ChatHandler) Transcript(c echo.Context) error {
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
