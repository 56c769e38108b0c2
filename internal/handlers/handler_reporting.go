package handlers

import (
	"net/http"
	"strconv"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the time-bucketed reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/profit", h.profit)
		reports.GET("/collections", h.collections)
		reports.GET("/customer-analysis", h.customerAnalysis)
	}
}

// currencyFilterQuery parses the optional currency query parameter.
func currencyFilterQuery(c *gin.Context) (*domain.Currency, bool) {
	raw := c.Query("currency")
	if raw == "" {
		return nil, true
	}
	currency := domain.Currency(raw)
	if !currency.IsSupported() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be one of EUR, USD, TRY"})
		return nil, false
	}
	return &currency, true
}

// cashFlow godoc
// @Summary Cash flow report
// @Description Buckets inflow/outflow/net per currency over the range with a running balance. Empty buckets are zero-filled.
// @Tags reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param bucket query string false "Bucket size: daily, weekly or monthly (default daily)"
// @Param currency query string false "Restrict to one currency"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid range or bucket"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	currency, ok := currencyFilterQuery(c)
	if !ok {
		return
	}

	bucket := domain.BucketSize(c.DefaultQuery("bucket", string(domain.BucketDaily)))
	buckets, err := h.reportingService.CashFlow(c.Request.Context(), tenantID, from, to, bucket, currency)
	if err != nil {
		respondError(c, logger, err, "Failed to build cash flow report")
		return
	}
	c.JSON(http.StatusOK, dto.CashFlowResponse{
		From:    from.Format(dto.DateLayout),
		To:      to.Format(dto.DateLayout),
		Bucket:  bucket,
		Buckets: buckets,
	})
}

// profit godoc
// @Summary Profit/loss report
// @Description Sums income vs expenses per currency for the range.
// @Tags reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param currency query string false "Restrict to one currency"
// @Success 200 {object} dto.ProfitResponse
// @Security BearerAuth
// @Router /reports/profit [get]
func (h *reportingHandler) profit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	currency, ok := currencyFilterQuery(c)
	if !ok {
		return
	}

	report, err := h.reportingService.Profit(c.Request.Context(), tenantID, from, to, currency)
	if err != nil {
		respondError(c, logger, err, "Failed to build profit report")
		return
	}
	c.JSON(http.StatusOK, dto.ProfitResponse{
		From:   from.Format(dto.DateLayout),
		To:     to.Format(dto.DateLayout),
		Report: *report,
	})
}

// collections godoc
// @Summary Collections report
// @Description Groups payment/credit totals by payment type, cari, or nothing.
// @Tags reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param groupBy query string false "Grouping: payment_type, cari or none (default none)"
// @Success 200 {object} dto.CollectionsResponse
// @Security BearerAuth
// @Router /reports/collections [get]
func (h *reportingHandler) collections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	groupBy := domain.CollectionGroupBy(c.DefaultQuery("groupBy", string(domain.GroupByNone)))
	report, err := h.reportingService.Collections(c.Request.Context(), tenantID, from, to, groupBy)
	if err != nil {
		respondError(c, logger, err, "Failed to build collections report")
		return
	}
	c.JSON(http.StatusOK, dto.CollectionsResponse{
		From:   from.Format(dto.DateLayout),
		To:     to.Format(dto.DateLayout),
		Report: *report,
	})
}

// customerAnalysis godoc
// @Summary Customer analysis report
// @Description Summarizes per-customer sales: counts, revenue per currency, first/last sale, returning flag.
// @Tags reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param minSales query int false "Minimum sale count to include a customer"
// @Success 200 {object} dto.CustomerAnalysisResponse
// @Security BearerAuth
// @Router /reports/customer-analysis [get]
func (h *reportingHandler) customerAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := requireIdentity(c, logger)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	minSales := 0
	if raw := c.Query("minSales"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minSales must be a non-negative integer"})
			return
		}
		minSales = parsed
	}

	customers, err := h.reportingService.CustomerAnalysis(c.Request.Context(), tenantID, from, to, minSales)
	if err != nil {
		respondError(c, logger, err, "Failed to build customer analysis report")
		return
	}
	c.JSON(http.StatusOK, dto.CustomerAnalysisResponse{
		From:      from.Format(dto.DateLayout),
		To:        to.Format(dto.DateLayout),
		Customers: customers,
	})
}
