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

// ledgerHandler handles HTTP requests for transaction posting and rate
// reconciliation checks.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to transaction posting.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
	}
	rg.GET("/reconciliation/:refType/:refID", h.verifyRateConsistency)
}

// postTransaction godoc
// @Summary Post a ledger transaction
// @Description Posts one immutable transaction with the current system rate snapshot. Individual customers land on the münferit account.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount, currency or date"
// @Failure 404 {object} map[string]string "Unknown account"
// @Failure 422 {object} map[string]string "Exchange rate not configured"
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.PostTransaction(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// verifyRateConsistency godoc
// @Summary Check record/transaction rate consistency
// @Description Compares a finance record's rate snapshot with its linked transaction's snapshot. Flags discrepancies, never fixes them.
// @Tags transactions
// @Produce json
// @Param refType path string true "Reference type (INCOME or EXPENSE)"
// @Param refID path string true "Record ID"
// @Success 200 {object} domain.RateDiscrepancy
// @Failure 404 {object} map[string]string "Record or transaction not found"
// @Security BearerAuth
// @Router /reconciliation/{refType}/{refID} [get]
func (h *ledgerHandler) verifyRateConsistency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	refType := domain.ReferenceType(c.Param("refType"))
	discrepancy, err := h.ledgerService.VerifyRateConsistency(c.Request.Context(), tenantID, refType, c.Param("refID"))
	if err != nil {
		respondError(c, logger, err, "Failed to verify rate consistency")
		return
	}
	c.JSON(http.StatusOK, discrepancy)
}
