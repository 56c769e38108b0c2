package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financeRecordHandler handles HTTP requests for income and expense records.
// Both kinds share the same flow and differ only in the ledger transaction
// type they post.
type financeRecordHandler struct {
	recordService portssvc.FinanceRecordSvcFacade
}

func newFinanceRecordHandler(rs portssvc.FinanceRecordSvcFacade) *financeRecordHandler {
	return &financeRecordHandler{recordService: rs}
}

// registerFinanceRecordRoutes registers routes related to income/expense records.
func registerFinanceRecordRoutes(rg *gin.RouterGroup, recordService portssvc.FinanceRecordSvcFacade) {
	h := newFinanceRecordHandler(recordService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.saveRecord(domain.RecordIncome, ""))
		incomes.PUT("/:recordID", h.saveRecord(domain.RecordIncome, "recordID"))
	}
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.saveRecord(domain.RecordExpense, ""))
		expenses.PUT("/:recordID", h.saveRecord(domain.RecordExpense, "recordID"))
	}
}

// saveRecord godoc
// @Summary Create or update an income/expense record
// @Description Writes the record and its linked ledger transaction atomically with a shared rate snapshot. Updates reverse the old amount at the original rate and repost at the current one.
// @Tags finance records
// @Accept json
// @Produce json
// @Param record body dto.SaveFinanceRecordRequest true "Record details"
// @Success 201 {object} dto.FinanceRecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown cari or record"
// @Failure 422 {object} map[string]string "Exchange rate not configured"
// @Security BearerAuth
// @Router /incomes [post]
func (h *financeRecordHandler) saveRecord(kind domain.RecordKind, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		tenantID, userID, ok := requireIdentity(c, logger)
		if !ok {
			return
		}

		var req dto.SaveFinanceRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for SaveFinanceRecord", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		var record *domain.FinanceRecord
		var err error
		if idParam == "" {
			record, err = h.recordService.CreateFinanceRecord(c.Request.Context(), tenantID, kind, req, userID)
		} else {
			record, err = h.recordService.UpdateFinanceRecord(c.Request.Context(), tenantID, kind, c.Param(idParam), req, userID)
		}
		if err != nil {
			respondError(c, logger, err, "Failed to save finance record")
			return
		}

		status := http.StatusCreated
		if idParam != "" {
			status = http.StatusOK
		}
		logger.Info("Finance record saved",
			slog.String("record_id", record.RecordID),
			slog.String("kind", string(kind)))
		c.JSON(status, dto.ToFinanceRecordResponse(record))
	}
}
