package handler

import (
	"net/http"

	"kantinchat/internal/model"
	"kantinchat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KantinHandler serves kantin profile lookups.
type KantinHandler struct {
	store service.MenuStore
}

// NewKantinHandler creates a new kantin handler
func NewKantinHandler(store service.MenuStore) *KantinHandler {
	return &KantinHandler{store: store}
}

// Get handles GET /api/v1/kantins/:id
func (h *KantinHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id.Version() != 4 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:  model.CodeInvalidKantinID,
			Error: "kantin id must be a valid UUID v4",
		})
		return
	}

	kantin, err := h.store.GetKantin(c.Request.Context(), id.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:  "kantin_lookup_failed",
			Error: "failed to look up kantin",
		})
		return
	}
	if kantin == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Code:  "kantin_not_found",
			Error: "kantin not found",
		})
		return
	}

	c.JSON(http.StatusOK, kantin)
}
