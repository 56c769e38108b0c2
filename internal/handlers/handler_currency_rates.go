package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyRatesHandler handles HTTP requests for the rate store, the central
// bank quote preview, and the header-rate converter.
type currencyRatesHandler struct {
	rateStore portssvc.RateStoreSvcFacade
	rateQuote portssvc.RateQuoteSvcFacade
	converter portssvc.ConverterSvcFacade
}

func newCurrencyRatesHandler(rateStore portssvc.RateStoreSvcFacade, rateQuote portssvc.RateQuoteSvcFacade, converter portssvc.ConverterSvcFacade) *currencyRatesHandler {
	return &currencyRatesHandler{
		rateStore: rateStore,
		rateQuote: rateQuote,
		converter: converter,
	}
}

// registerCurrencyRateRoutes registers routes related to currency rates.
func registerCurrencyRateRoutes(rg *gin.RouterGroup, rateStore portssvc.RateStoreSvcFacade, rateQuote portssvc.RateQuoteSvcFacade, converter portssvc.ConverterSvcFacade) {
	h := newCurrencyRatesHandler(rateStore, rateQuote, converter)

	rates := rg.Group("/rates")
	{
		rates.GET("/quote", h.getQuote)
		rates.GET("/:scope", h.getRates)
		rates.PUT("/:scope", h.setRates)
		rates.PUT("/:scope/lock", h.setRateLock)
		rates.POST("/:scope/refresh", h.refreshRates)
	}
	rg.GET("/convert", h.convert)
}

func scopeParam(c *gin.Context) (domain.RateScope, bool) {
	scope := domain.RateScope(c.Param("scope"))
	if !scope.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be 'system' or 'header'"})
		return "", false
	}
	return scope, true
}

// getRates godoc
// @Summary Get a currency rate set
// @Description Retrieves the tenant's rate set for the given scope. Never 404s; unset rates read as zero.
// @Tags rates
// @Produce json
// @Param scope path string true "Rate scope (system or header)"
// @Success 200 {object} dto.RateSetResponse
// @Failure 400 {object} map[string]string "Unknown scope"
// @Security BearerAuth
// @Router /rates/{scope} [get]
func (h *currencyRatesHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := scopeParam(c)
	if !ok {
		return
	}
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	set, err := h.rateStore.GetRates(c.Request.Context(), tenantID, scope)
	if err != nil {
		respondError(c, logger, err, "Failed to get rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateSetResponse(set))
}

// setRates godoc
// @Summary Set manual rates
// @Description Replaces the EUR/USD rates of a scope. Rejected while the set is locked.
// @Tags rates
// @Accept json
// @Produce json
// @Param scope path string true "Rate scope (system or header)"
// @Param rates body dto.SetRatesRequest true "New EUR/USD rates"
// @Success 200 {object} dto.RateSetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rate set is locked"
// @Security BearerAuth
// @Router /rates/{scope} [put]
func (h *currencyRatesHandler) setRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := scopeParam(c)
	if !ok {
		return
	}
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	var req dto.SetRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	set, err := h.rateStore.SetManualRates(c.Request.Context(), tenantID, scope, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to set rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateSetResponse(set))
}

// setRateLock godoc
// @Summary Lock or unlock a rate set
// @Description Toggles the lock flag; rates, source and timestamp stay untouched.
// @Tags rates
// @Accept json
// @Produce json
// @Param scope path string true "Rate scope (system or header)"
// @Param lock body dto.SetRateLockRequest true "Lock flag"
// @Success 200 {object} dto.RateSetResponse
// @Security BearerAuth
// @Router /rates/{scope}/lock [put]
func (h *currencyRatesHandler) setRateLock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := scopeParam(c)
	if !ok {
		return
	}
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	var req dto.SetRateLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRateLock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	set, err := h.rateStore.SetRateLock(c.Request.Context(), tenantID, scope, *req.Locked, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to set rate lock")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateSetResponse(set))
}

// refreshRates godoc
// @Summary Refresh rates from the central bank
// @Description Fetches the TCMB daily quote and propagates it into the scope's rate set. All-or-nothing.
// @Tags rates
// @Produce json
// @Param scope path string true "Rate scope (system or header)"
// @Success 200 {object} dto.RateSetResponse
// @Failure 409 {object} map[string]string "Rate set is locked"
// @Failure 422 {object} map[string]string "Quote incomplete"
// @Failure 502 {object} map[string]string "Quote feed unavailable"
// @Security BearerAuth
// @Router /rates/{scope}/refresh [post]
func (h *currencyRatesHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := scopeParam(c)
	if !ok {
		return
	}
	tenantID, userID, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	quote, err := h.rateQuote.FetchCentralBankQuote(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch central bank quote")
		return
	}

	set, err := h.rateStore.RefreshFromQuote(c.Request.Context(), tenantID, scope, *quote, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to refresh rates")
		return
	}

	logger.Info("Rates refreshed from central bank", slog.String("scope", string(scope)))
	c.JSON(http.StatusOK, dto.ToRateSetResponse(set))
}

// getQuote godoc
// @Summary Preview the central bank quote
// @Description Fetches today's TCMB EUR/USD selling rates without touching stored rates.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 502 {object} map[string]string "Quote feed unavailable"
// @Security BearerAuth
// @Router /rates/quote [get]
func (h *currencyRatesHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quote, err := h.rateQuote.FetchCentralBankQuote(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch central bank quote")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts with the tenant's header-scope rates. Display only; never affects the ledger.
// @Tags rates
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 422 {object} map[string]string "Header rates not configured"
// @Security BearerAuth
// @Router /convert [get]
func (h *currencyRatesHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	if !amount.IsPositive() {
		respondError(c, logger, apperrors.ErrInvalidAmount, "Failed to convert")
		return
	}
	from := domain.Currency(c.Query("from"))
	to := domain.Currency(c.Query("to"))

	converted, err := h.converter.Convert(c.Request.Context(), tenantID, amount, from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to convert")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{Amount: amount, From: from, To: to, Converted: converted})
}
