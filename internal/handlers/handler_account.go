package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for ledger accounts, balances and
// statements.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// registerAccountRoutes registers routes related to ledger accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.DELETE("/:accountID", h.archiveAccount)
		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.GET("/:accountID/statement", h.getStatement)
	}
}

// createAccount godoc
// @Summary Create a ledger account
// @Description Creates a corporate or individual account with zero balances in all currencies
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List ledger accounts
// @Tags accounts
// @Produce json
// @Param includeArchived query bool false "Include archived accounts"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	includeArchived := c.Query("includeArchived") == "true"
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, includeArchived)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get a ledger account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), tenantID, c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// archiveAccount godoc
// @Summary Archive a ledger account
// @Description Flags the account as archived; history stays queryable
// @Tags accounts
// @Param accountID path string true "Account ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) archiveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	if err := h.accountService.ArchiveAccount(c.Request.Context(), tenantID, c.Param("accountID"), userID); err != nil {
		respondError(c, logger, err, "Failed to archive account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Returns the account's running balance per currency
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	balances, err := h.ledgerService.GetBalance(c.Request.Context(), tenantID, accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balances: balances})
}

// getStatement godoc
// @Summary Get an account statement
// @Description Returns the account's transactions within the date range, in posting order
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *accountHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	txns, err := h.ledgerService.GetStatement(c.Request.Context(), tenantID, accountID, from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to get statement")
		return
	}
	c.JSON(http.StatusOK, dto.StatementResponse{
		AccountID:    accountID,
		From:         from.Format(dto.DateLayout),
		To:           to.Format(dto.DateLayout),
		Transactions: dto.ToListTransactionResponse(txns),
	})
}

// dateRangeQuery parses the mandatory from/to query parameters.
func dateRangeQuery(c *gin.Context) (from, to time.Time, ok bool) {
	from, err := time.Parse(dto.DateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(dto.DateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
