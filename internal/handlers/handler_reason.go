package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/core/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reasonHandler handles HTTP requests for the classification vocabulary.
type reasonHandler struct {
	reasonService portssvc.ReasonSvcFacade
}

// newReasonHandler creates a new reasonHandler.
func newReasonHandler(rs portssvc.ReasonSvcFacade) *reasonHandler {
	return &reasonHandler{
		reasonService: rs,
	}
}

// registerReasonRoutes registers all classification vocabulary routes.
func registerReasonRoutes(rg *gin.RouterGroup, reasonService portssvc.ReasonSvcFacade) {
	h := newReasonHandler(reasonService)

	reasons := rg.Group("/reasons")
	{
		reasons.POST("", h.createReason)
		reasons.GET("", h.listReasons)
		reasons.GET("/:id", h.getReason)
		reasons.DELETE("/:id", h.deleteReason)
	}
}

// createReason godoc
// @Summary Add a classification reason
// @Description Adds a reason to the classification vocabulary
// @Tags reasons
// @Accept  json
// @Produce  json
// @Param   reason body dto.CreateReasonRequest true "Reason details"
// @Success 201 {object} dto.ReasonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Reason name already exists"
// @Failure 500 {object} map[string]string "Failed to add reason"
// @Security BearerAuth
// @Router /reasons [post]
func (h *reasonHandler) createReason(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reason, err := h.reasonService.CreateReason(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Reason name already exists"})
			return
		}
		logger.Error("Failed to add reason", slog.String("error", err.Error()), slog.String("name", req.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reason"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToReasonResponse(reason))
}

// getReason godoc
// @Summary Get a reason by ID
// @Tags reasons
// @Produce  json
// @Param   id path string true "Reason ID"
// @Success 200 {object} dto.ReasonResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reason not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reason"
// @Security BearerAuth
// @Router /reasons/{id} [get]
func (h *reasonHandler) getReason(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reasonID := c.Param("id")

	reason, err := h.reasonService.GetReasonByID(c.Request.Context(), reasonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reason not found"})
			return
		}
		logger.Error("Failed to get reason from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reason"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReasonResponse(reason))
}

// listReasons godoc
// @Summary List classification reasons
// @Tags reasons
// @Produce  json
// @Success 200 {object} dto.ListReasonsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list reasons"
// @Security BearerAuth
// @Router /reasons [get]
func (h *reasonHandler) listReasons(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reasons, err := h.reasonService.ListReasons(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list reasons from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reasons"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReasonsResponse(reasons))
}

// deleteReason godoc
// @Summary Delete a reason
// @Description Removes a reason from the vocabulary. Deletion is refused while line items still reference it.
// @Tags reasons
// @Produce  json
// @Param   id path string true "Reason ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reason not found"
// @Failure 409 {object} map[string]string "Reason is still referenced"
// @Failure 500 {object} map[string]string "Failed to delete reason"
// @Security BearerAuth
// @Router /reasons/{id} [delete]
func (h *reasonHandler) deleteReason(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reasonID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.reasonService.DeleteReason(c.Request.Context(), reasonID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reason not found"})
		case errors.Is(err, services.ErrReasonInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete reason", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reason"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
