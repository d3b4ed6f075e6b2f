package handler

import (
	"net/http"
	"strings"

	"kantinchat/internal/model"
	"kantinchat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /api/v1/chat. Validation failures get a 400 with a
// machine-readable code; everything the pipeline can answer, including
// out-of-scope messages, is a 200.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:  model.CodeInvalidBody,
			Error: "request body must be valid JSON",
		})
		return
	}

	if req.Message == nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:  model.CodeMissingMessage,
			Error: "message field is required",
		})
		return
	}

	message := strings.TrimSpace(*req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:  model.CodeEmptyMessage,
			Error: "message must not be blank",
		})
		return
	}

	kantinID, ok := parseKantinID(req.KantinID)
	if !ok {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:  model.CodeInvalidKantinID,
			Error: "kantin_id must be a valid UUID v4",
		})
		return
	}

	response := h.chatService.Handle(c.Request.Context(), message, kantinID)
	c.JSON(http.StatusOK, response)
}

// parseKantinID validates the optional store scope. Absent or blank means
// "search across all kantins".
func parseKantinID(raw *string) (string, bool) {
	if raw == nil {
		return "", true
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return "", true
	}
	id, err := uuid.Parse(trimmed)
	if err != nil || id.Version() != 4 {
		return "", false
	}
	return id.String(), true
}
