package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membership-recon/internal/exporter"
	"membership-recon/internal/service"
	"membership-recon/pkg/logger"
	"membership-recon/pkg/response"
)

type ReconciliationHandler struct {
	service   service.ReconciliationService
	uploadDir string
}

func NewReconciliationHandler(service service.ReconciliationService, uploadDir string) *ReconciliationHandler {
	return &ReconciliationHandler{service: service, uploadDir: uploadDir}
}

// Reconcile godoc
// @Summary Run a reconciliation
// @Description Upload the payments and bookings CSVs (and optionally a roster CSV) and reconcile them in one run
// @Tags reconciliation
// @Accept multipart/form-data
// @Produce json
// @Param roster formData file false "Roster CSV (falls back to the stored roster when omitted)"
// @Param payments formData file true "Membership payments CSV"
// @Param bookings formData file true "External bookings CSV"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	paymentsPath, err := h.saveUpload(c, "payments", true)
	if err != nil {
		response.BadRequest(c, "Missing payments file", err.Error())
		return
	}

	bookingsPath, err := h.saveUpload(c, "bookings", true)
	if err != nil {
		response.BadRequest(c, "Missing bookings file", err.Error())
		return
	}

	rosterPath, err := h.saveUpload(c, "roster", false)
	if err != nil {
		response.BadRequest(c, "Invalid roster file", err.Error())
		return
	}

	result, err := h.service.Reconcile(rosterPath, paymentsPath, bookingsPath)
	if err != nil {
		logger.GetLogger().WithError(err).Error("Reconciliation failed")
		response.InternalError(c, "Reconciliation failed", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Reconciliation completed successfully", result)
}

// GetRunStatus godoc
// @Summary Get reconciliation run status
// @Description Get the status and counters of a reconciliation run by ID
// @Tags reconciliation
// @Produce json
// @Param run_id path string true "Run ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reconcile/runs/{run_id} [get]
func (h *ReconciliationHandler) GetRunStatus(c *gin.Context) {
	runID := c.Param("run_id")

	run, err := h.service.GetRunStatus(runID)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("run_id", runID).Error("Run not found")
		response.NotFound(c, "Run not found")
		return
	}

	response.Success(c, http.StatusOK, "Run status retrieved successfully", run)
}

// GetSummary godoc
// @Summary Get the text summary of a run
// @Description Returns the fixed-format reconciliation summary report
// @Tags reconciliation
// @Produce plain
// @Param run_id path string true "Run ID"
// @Success 200 {string} string
// @Failure 404 {object} response.Response
// @Router /api/v1/reconcile/runs/{run_id}/summary [get]
func (h *ReconciliationHandler) GetSummary(c *gin.Context) {
	runID := c.Param("run_id")

	path, err := h.service.GetReportPath(runID, exporter.ReportSummary)
	if err != nil {
		response.NotFound(c, "Summary not found")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.File(path)
}

// DownloadReport godoc
// @Summary Download a run report
// @Description Download one of the run's result tables as CSV
// @Tags reconciliation
// @Produce text/csv
// @Param run_id path string true "Run ID"
// @Param name path string true "Report name" Enums(selected_status, paid_not_selected, unmatched_payments, bookings_all, booking_issues, fuzzy_suggestions, summary)
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /api/v1/reconcile/runs/{run_id}/reports/{name} [get]
func (h *ReconciliationHandler) DownloadReport(c *gin.Context) {
	runID := c.Param("run_id")
	name := c.Param("name")

	path, err := h.service.GetReportPath(runID, name)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("run_id", runID).WithField("report", name).Error("Report not found")
		response.NotFound(c, "Report not found")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// saveUpload stores a multipart file under the upload directory and returns
// its path; "" when the field is absent and not required.
func (h *ReconciliationHandler) saveUpload(c *gin.Context, field string, required bool) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if !required {
			return "", nil
		}
		return "", fmt.Errorf("form file %q is required: %w", field, err)
	}

	path := filepath.Join(h.uploadDir, uuid.New().String()+"_"+sanitizeFilename(file))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, nil
}

func sanitizeFilename(file *multipart.FileHeader) string {
	return filepath.Base(filepath.Clean(file.Filename))
}
