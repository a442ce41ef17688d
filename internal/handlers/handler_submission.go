package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/pharmaflow/pharma_returns_app/internal/apperrors"
	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	portssvc "github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
	"github.com/pharmaflow/pharma_returns_app/internal/core/services"
	"github.com/pharmaflow/pharma_returns_app/internal/dto"
	"github.com/pharmaflow/pharma_returns_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// submissionHandler handles HTTP requests for return submissions.
type submissionHandler struct {
	submissionService portssvc.SubmissionSvcFacade
	userService       portssvc.UserReaderSvc
}

// newSubmissionHandler creates a new submissionHandler.
func newSubmissionHandler(ss portssvc.SubmissionSvcFacade, us portssvc.UserReaderSvc) *submissionHandler {
	return &submissionHandler{
		submissionService: ss,
		userService:       us,
	}
}

// registerSubmissionRoutes registers all submission-related routes.
func registerSubmissionRoutes(rg *gin.RouterGroup, submissionService portssvc.SubmissionSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSubmissionHandler(submissionService, userService)

	submissions := rg.Group("/submissions")
	{
		submissions.POST("", h.createSubmission)
		submissions.GET("", h.listSubmissions)
		submissions.GET("/:id", h.getSubmission)
		submissions.POST("/:id/items/import", h.importItems)
		submissions.POST("/:id/finalize", h.finalizeSubmission)
		submissions.POST("/:id/review", middleware.ReviewerRequired(userService), h.reviewSubmission)
		submissions.POST("/estimate", h.estimateItem)
	}
}

// requestingUser loads the authenticated user for role-aware operations.
func (h *submissionHandler) requestingUser(c *gin.Context) (*domain.User, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load requesting user", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}

// csvBody returns the CSV payload of an import request. It accepts either a
// multipart form with a "file" part or a raw CSV request body.
func csvBody(c *gin.Context) (io.ReadCloser, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		return fileHeader.Open()
	}
	if c.Request.Body == nil {
		return nil, errors.New("empty request body")
	}
	return c.Request.Body, nil
}

// createSubmission godoc
// @Summary Create a return submission
// @Description Creates a draft submission. Each input row is resolved independently; rejected rows are reported, not fatal.
// @Tags submissions
// @Accept  json
// @Produce  json
// @Param   submission body dto.CreateSubmissionRequest true "Submission line items"
// @Success 201 {object} dto.CreateSubmissionResponse
// @Failure 400 {object} map[string]string "Invalid input or all rows rejected"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create submission"
// @Security BearerAuth
// @Router /submissions [post]
func (h *submissionHandler) createSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.submissionService.CreateSubmission(c.Request.Context(), creatorUserID, req)
	if err != nil {
		if errors.Is(err, services.ErrNoAcceptedItems) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create submission", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getSubmission godoc
// @Summary Get a submission by ID
// @Description Retrieves a submission with its items and status history. Non-reviewers may only read their own submissions.
// @Tags submissions
// @Produce  json
// @Param   id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Failed to retrieve submission"
// @Security BearerAuth
// @Router /submissions/{id} [get]
func (h *submissionHandler) getSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	submissionID := c.Param("id")

	user, ok := h.requestingUser(c)
	if !ok {
		return
	}

	resp, err := h.submissionService.GetSubmissionByID(c.Request.Context(), submissionID, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		logger.Error("Failed to get submission", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submission"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listSubmissions godoc
// @Summary List submissions
// @Description Retrieves a paginated list of the requesting user's submissions. Reviewers see submissions from all users.
// @Tags submissions
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListSubmissionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list submissions"
// @Security BearerAuth
// @Router /submissions [get]
func (h *submissionHandler) listSubmissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSubmissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	user, ok := h.requestingUser(c)
	if !ok {
		return
	}

	resp, err := h.submissionService.ListSubmissions(c.Request.Context(), user, params)
	if err != nil {
		logger.Error("Failed to list submissions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// importItems godoc
// @Summary Import line items from CSV
// @Description Parses CSV rows (ndc,quantity,expiration_date) and appends the accepted rows to a draft submission.
// @Tags submissions
// @Accept  mpfd
// @Produce  json
// @Param   id path string true "Submission ID"
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportItemsResponse
// @Failure 400 {object} map[string]string "Invalid CSV"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "Submission is no longer a draft"
// @Failure 500 {object} map[string]string "Failed to import items"
// @Security BearerAuth
// @Router /submissions/{id}/items/import [post]
func (h *submissionHandler) importItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	submissionID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := csvBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV payload required"})
		return
	}
	defer body.Close()

	resp, err := h.submissionService.ImportItems(c.Request.Context(), submissionID, requestingUserID, body)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		case errors.Is(err, services.ErrNotDraft):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to import items", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import items"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// finalizeSubmission godoc
// @Summary Finalize a draft submission
// @Description Moves a draft to Submitted and assigns its tracking number. Finalizing a submission that already left Draft is a no-op.
// @Tags submissions
// @Produce  json
// @Param   id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 500 {object} map[string]string "Failed to finalize submission"
// @Security BearerAuth
// @Router /submissions/{id}/finalize [post]
func (h *submissionHandler) finalizeSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	submissionID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.submissionService.FinalizeSubmission(c.Request.Context(), submissionID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		logger.Error("Failed to finalize submission", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize submission"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reviewSubmission godoc
// @Summary Apply a reviewer status decision
// @Description Moves a submission to Received or Credited. Requires the reviewer role.
// @Tags submissions
// @Accept  json
// @Produce  json
// @Param   id path string true "Submission ID"
// @Param   review body dto.ReviewSubmissionRequest true "Review decision"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} map[string]string "Invalid review target"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Reviewer role required"
// @Failure 404 {object} map[string]string "Submission not found"
// @Failure 409 {object} map[string]string "Concurrent update conflict"
// @Failure 500 {object} map[string]string "Failed to review submission"
// @Security BearerAuth
// @Router /submissions/{id}/review [post]
func (h *submissionHandler) reviewSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	submissionID := c.Param("id")

	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reviewer, ok := h.requestingUser(c)
	if !ok {
		return
	}

	resp, err := h.submissionService.ReviewSubmission(c.Request.Context(), submissionID, reviewer, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Reviewer role required"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Submission was updated concurrently"})
		default:
			logger.Error("Failed to review submission", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review submission"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// estimateItem godoc
// @Summary Estimate a single prospective item
// @Description Runs the eligibility resolver for one item without persisting anything.
// @Tags submissions
// @Accept  json
// @Produce  json
// @Param   item body dto.EstimateItemRequest true "Item to estimate"
// @Success 200 {object} dto.EstimateItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to estimate item"
// @Security BearerAuth
// @Router /submissions/estimate [post]
func (h *submissionHandler) estimateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.EstimateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.submissionService.EstimateItem(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to estimate item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate item"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
