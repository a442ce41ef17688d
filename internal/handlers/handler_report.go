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

// reportHandler handles HTTP requests for the reconciliation ledger.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{
		reportService: rs,
	}
}

// registerReportRoutes registers all reconciliation ledger routes.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/summary", h.summarize)
		reports.GET("/:returnNo", h.getReport)
		reports.POST("/:returnNo/items/import", h.importReturnItems)
	}

	checks := rg.Group("/checks")
	{
		checks.POST("", h.recordCheckStatement)
		checks.GET("", h.listCheckStatements)
		checks.GET("/:id", h.getCheckStatement)
		checks.POST("/:id/reconcile", h.reconcileStatement)
	}
}

// createReport godoc
// @Summary Record a return report
// @Description Records a processing-center return report with its manufacturer breakdowns.
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   report body dto.CreateReportRequest true "Report details"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Return number already recorded"
// @Failure 500 {object} map[string]string "Failed to record report"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportService.CreateReport(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Return number already recorded"})
		default:
			logger.Error("Failed to record report", slog.String("error", err.Error()), slog.String("return_no", req.ReturnNo))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record report"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getReport godoc
// @Summary Get a return report
// @Description Retrieves a return report with its manufacturer breakdowns by return number.
// @Tags reports
// @Produce  json
// @Param   returnNo path string true "Return number"
// @Success 200 {object} dto.ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to retrieve report"
// @Security BearerAuth
// @Router /reports/{returnNo} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnNo := c.Param("returnNo")

	resp, err := h.reportService.GetReportByReturnNo(c.Request.Context(), returnNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		logger.Error("Failed to get report", slog.String("error", err.Error()), slog.String("return_no", returnNo))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listReports godoc
// @Summary List return reports
// @Description Retrieves all return reports, most recent invoice first.
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ListReportsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list reports"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// summarize godoc
// @Summary Summarize the reconciliation ledger
// @Description Aggregates ledger totals and the per-manufacturer ERV rollup.
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ReportSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarize ledger"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportHandler) summarize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportService.Summarize(c.Request.Context())
	if err != nil {
		logger.Error("Failed to summarize ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize ledger"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// importReturnItems godoc
// @Summary Import processed return items from CSV
// @Description Parses processing-center CSV rows and attaches the catalogued items to a report.
// @Tags reports
// @Accept  mpfd
// @Produce  json
// @Param   returnNo path string true "Return number"
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportItemsResponse
// @Failure 400 {object} map[string]string "Invalid CSV"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to import items"
// @Security BearerAuth
// @Router /reports/{returnNo}/items/import [post]
func (h *reportHandler) importReturnItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnNo := c.Param("returnNo")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
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

	resp, err := h.reportService.ImportReturnItems(c.Request.Context(), returnNo, creatorUserID, body)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to import return items", slog.String("error", err.Error()), slog.String("return_no", returnNo))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import items"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// recordCheckStatement godoc
// @Summary Record a manufacturer check
// @Description Records a check statement with its per-report allocations. Allocations must sum to the check amount.
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   statement body dto.CreateCheckStatementRequest true "Check statement details"
// @Success 201 {object} dto.CheckStatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced return report not found"
// @Failure 409 {object} map[string]string "Statement or check number already recorded"
// @Failure 500 {object} map[string]string "Failed to record check"
// @Security BearerAuth
// @Router /checks [post]
func (h *reportHandler) recordCheckStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCheckStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportService.RecordCheckStatement(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Statement or check number already recorded"})
		default:
			logger.Error("Failed to record check statement", slog.String("error", err.Error()), slog.String("statement_no", req.StatementNo))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getCheckStatement godoc
// @Summary Get a check statement
// @Tags checks
// @Produce  json
// @Param   id path string true "Statement ID"
// @Success 200 {object} dto.CheckStatementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Statement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve statement"
// @Security BearerAuth
// @Router /checks/{id} [get]
func (h *reportHandler) getCheckStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("id")

	resp, err := h.reportService.GetCheckStatement(c.Request.Context(), statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
			return
		}
		logger.Error("Failed to get check statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listCheckStatements godoc
// @Summary List check statements
// @Tags checks
// @Produce  json
// @Success 200 {object} dto.ListCheckStatementsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list statements"
// @Security BearerAuth
// @Router /checks [get]
func (h *reportHandler) listCheckStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportService.ListCheckStatements(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list check statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reconcileStatement godoc
// @Summary Reconcile a pending check statement
// @Description Applies a pending statement's allocations to the referenced return reports and marks the statement Cleared.
// @Tags checks
// @Produce  json
// @Param   id path string true "Statement ID"
// @Success 200 {object} dto.CheckStatementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Statement not found"
// @Failure 409 {object} map[string]string "Statement is not pending"
// @Failure 500 {object} map[string]string "Failed to reconcile statement"
// @Security BearerAuth
// @Router /checks/{id}/reconcile [post]
func (h *reportHandler) reconcileStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportService.ReconcileStatement(c.Request.Context(), statementID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
		case errors.Is(err, services.ErrStatementNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile statement"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
