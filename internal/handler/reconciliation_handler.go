package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meesho-recon/internal/middleware"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/response"
)

type ReconciliationHandler struct {
	service service.ReconciliationService
}

func NewReconciliationHandler(service service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// Reconcile godoc
// @Summary Perform reconciliation
// @Description Reconcile the session's old and new order snapshots, settling old orders found in the payout snapshot first
// @Tags reconciliation
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	report, err := h.service.Reconcile(sess)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("session_id", sess.ID).Error("Reconciliation failed")
		respondError(c, "Reconciliation failed", err)
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, "Reconciliation completed successfully", report, report.Warnings)
}

// GetReport godoc
// @Summary Get the last reconciliation report
// @Description Return the ledger and totals of the session's last reconciliation run
// @Tags reconciliation
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/reconcile [get]
func (h *ReconciliationHandler) GetReport(c *gin.Context) {
	report, err := h.service.LastReport(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "No reconciliation report", err)
		return
	}
	response.Success(c, http.StatusOK, "Reconciliation report retrieved successfully", report)
}
