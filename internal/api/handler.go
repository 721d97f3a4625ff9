package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/middleware"
	"github.com/guttosm/stockscope/internal/service"
	"github.com/guttosm/stockscope/internal/storage"
)

// Services bundles the per-endpoint services the handlers delegate to.
type Services struct {
	Dividends  service.DividendService
	Earnings   service.EarningsService
	Metrics    service.MetricsService
	Financials service.FinancialsService
	Valuation  service.ValuationService
	Sentiment  service.SentimentService
	Watchlist  service.WatchlistService
}

// Handler provides HTTP handlers for the research endpoints.
//
// Responsibilities:
//   - Bind query parameters and request bodies
//   - Delegate to the service layer with the request context
//   - Translate service errors into status codes and ErrorResponse bodies
type Handler struct {
	svc Services
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (Services): the services used by every endpoint.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// respondError maps a service error onto the HTTP error taxonomy.
//
// Mapping:
//   - *service.MissingParameterError, *service.InvalidParameterError → 400
//   - *service.UnavailableError → 404 with the per-provider details
//   - storage.ErrNotFound → 404, storage.ErrAlreadyExists → 409
//   - service.ErrWatchlistDisabled → 503
//   - anything else → 500 with a generic message; the error is attached to
//     the context and logged by middleware.ErrorHandler
func respondError(c *gin.Context, err error) {
	var missing *service.MissingParameterError
	var invalid *service.InvalidParameterError
	var unavailable *service.UnavailableError

	switch {
	case errors.As(err, &missing):
		middleware.AbortWithError(c, http.StatusBadRequest, missing.Error(), nil)
	case errors.As(err, &invalid):
		middleware.AbortWithError(c, http.StatusBadRequest, invalid.Error(), nil)
	case errors.As(err, &unavailable):
		middleware.AbortWithDetails(c, http.StatusNotFound, unavailable.Message, unavailable.Details)
	case errors.Is(err, storage.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "symbol is not on the watchlist", nil)
	case errors.Is(err, storage.ErrAlreadyExists):
		middleware.AbortWithError(c, http.StatusConflict, "symbol is already on the watchlist", nil)
	case errors.Is(err, service.ErrWatchlistDisabled):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "watchlist is disabled", nil)
	default:
		_ = c.Error(err)
		middleware.AbortWithError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// bindQuery binds query parameters into dst; failures are reported as 400.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return false
	}
	return true
}

// bindSymbolQuery reports a blank symbol before binding the remaining query parameters.
func bindSymbolQuery(c *gin.Context, dst any) bool {
	if strings.TrimSpace(c.Query("symbol")) == "" {
		respondError(c, &service.MissingParameterError{Param: "symbol", Message: "Stock symbol is required"})
		return false
	}
	return bindQuery(c, dst)
}

// GetDividends godoc
// @Summary      Dividend history and growth
// @Description  Historical dividends, annual totals, dividend CAGR and current-year projection from the first provider with data
// @Tags         research
// @Produce      json
// @Param        symbol  query     string  true  "Stock symbol" example(KO)
// @Success      200     {object}  dto.DividendsResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing symbol"
// @Failure      404     {object}  dto.ErrorResponse  "No provider returned dividends"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/dividends [get]
func (h *Handler) GetDividends(c *gin.Context) {
	resp, err := h.svc.Dividends.GetDividends(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEPSGrowth godoc
// @Summary      EPS history and growth
// @Description  Annual EPS, historical CAGR and analyst-implied growth. Analyst failures leave the analyst fields null.
// @Tags         research
// @Produce      json
// @Param        symbol  query     string  true  "Stock symbol" example(AAPL)
// @Success      200     {object}  dto.EPSGrowthResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/eps-growth [get]
func (h *Handler) GetEPSGrowth(c *gin.Context) {
	resp, err := h.svc.Earnings.GetEPSGrowth(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type metricsQuery struct {
	TargetYear *int `form:"targetYear" binding:"omitempty,min=1900,max=2200"`
}

// GetMetrics godoc
// @Summary      Derived metrics
// @Description  Price, margins, P/E, forward P/E, growth, market cap, beta and dividend yield; unavailable figures are null
// @Tags         research
// @Produce      json
// @Param        symbol      query     string  true   "Stock symbol" example(AAPL)
// @Param        targetYear  query     int     false  "Fiscal year for the forward P/E" example(2026)
// @Success      200         {object}  dto.MetricsResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /api/v1/metrics [get]
func (h *Handler) GetMetrics(c *gin.Context) {
	var q metricsQuery
	if !bindSymbolQuery(c, &q) {
		return
	}
	resp, err := h.svc.Metrics.GetMetrics(c.Request.Context(), c.Query("symbol"), q.TargetYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFinancials godoc
// @Summary      Normalized financial statements
// @Description  Income and cash-flow records with per-record margins, from one provider or the first with data
// @Tags         research
// @Produce      json
// @Param        symbol    query     string  true   "Stock symbol" example(IBM)
// @Param        period    query     string  false  "annual or quarterly" default(annual)
// @Param        provider  query     string  false  "fmp, finnhub or alphavantage"
// @Param        from      query     string  false  "Earliest period end, YYYY-MM-DD"
// @Param        to        query     string  false  "Latest period end, YYYY-MM-DD"
// @Success      200       {object}  dto.FinancialsResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/v1/financials [get]
func (h *Handler) GetFinancials(c *gin.Context) {
	resp, err := h.svc.Financials.GetFinancials(c.Request.Context(), service.FinancialsQuery{
		Symbol:   c.Query("symbol"),
		Period:   c.Query("period"),
		Provider: c.Query("provider"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type ddmQuery struct {
	WACC            *float64 `form:"wacc"`
	StableGrowth    *float64 `form:"stableGrowth"`
	HighGrowthRate  *float64 `form:"highGrowthRate"`
	HighGrowthYears *int     `form:"highGrowthYears"`
}

// GetDDM godoc
// @Summary      Dividend discount model
// @Description  Two-stage DDM on the last complete year of dividends. Terminal value is 0 when wacc <= stableGrowth.
// @Tags         valuation
// @Produce      json
// @Param        symbol           query     string  true   "Stock symbol" example(KO)
// @Param        wacc             query     number  false  "Discount rate" default(0.08)
// @Param        stableGrowth     query     number  false  "Perpetual growth" default(0.03)
// @Param        highGrowthRate   query     number  false  "Explicit-stage growth, defaults to the dividend CAGR"
// @Param        highGrowthYears  query     int     false  "Explicit-stage years" default(5)
// @Success      200              {object}  dto.DDMResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      404              {object}  dto.ErrorResponse
// @Failure      500              {object}  dto.ErrorResponse
// @Router       /api/v1/ddm [get]
func (h *Handler) GetDDM(c *gin.Context) {
	var q ddmQuery
	if !bindSymbolQuery(c, &q) {
		return
	}
	resp, err := h.svc.Valuation.GetDDM(c.Request.Context(), service.DDMQuery{
		Symbol:          c.Query("symbol"),
		WACC:            q.WACC,
		StableGrowth:    q.StableGrowth,
		HighGrowthRate:  q.HighGrowthRate,
		HighGrowthYears: q.HighGrowthYears,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type dcfQuery struct {
	WACC           *float64 `form:"wacc"`
	TerminalGrowth *float64 `form:"terminalGrowth"`
	GrowthRate     *float64 `form:"growthRate"`
	Years          *int     `form:"years"`
}

// GetDCF godoc
// @Summary      Discounted cash flow
// @Description  Two-stage DCF on annual free cash flow with the net-debt equity bridge
// @Tags         valuation
// @Produce      json
// @Param        symbol          query     string  true   "Stock symbol" example(MSFT)
// @Param        wacc            query     number  false  "Discount rate" default(0.08)
// @Param        terminalGrowth  query     number  false  "Perpetual growth" default(0.025)
// @Param        growthRate      query     number  false  "Explicit-stage growth, defaults to the FCF CAGR"
// @Param        years           query     int     false  "Explicit-stage years" default(5)
// @Success      200             {object}  dto.DCFResponse
// @Failure      400             {object}  dto.ErrorResponse
// @Failure      404             {object}  dto.ErrorResponse
// @Failure      500             {object}  dto.ErrorResponse
// @Router       /api/v1/dcf [get]
func (h *Handler) GetDCF(c *gin.Context) {
	var q dcfQuery
	if !bindSymbolQuery(c, &q) {
		return
	}
	resp, err := h.svc.Valuation.GetDCF(c.Request.Context(), service.DCFQuery{
		Symbol:         c.Query("symbol"),
		WACC:           q.WACC,
		TerminalGrowth: q.TerminalGrowth,
		GrowthRate:     q.GrowthRate,
		Years:          q.Years,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFearGreed godoc
// @Summary      CNN Fear & Greed index
// @Tags         research
// @Produce      json
// @Success      200  {object}  dto.FearGreedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/fear-greed [get]
func (h *Handler) GetFearGreed(c *gin.Context) {
	resp, err := h.svc.Sentiment.GetFearGreed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListWatchlist godoc
// @Summary      List watchlist
// @Tags         watchlist
// @Produce      json
// @Param        symbols  query     string  false  "Comma-separated symbols to restrict the list to"
// @Success      200  {array}   dto.WatchlistItem
// @Failure      503  {object}  dto.ErrorResponse  "Watchlist disabled"
// @Router       /api/v1/watchlist [get]
func (h *Handler) ListWatchlist(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}
	items, err := h.svc.Watchlist.List(c.Request.Context(), symbols...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddWatchlist godoc
// @Summary      Add a symbol to the watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        body  body      dto.WatchlistRequest  true  "Entry"
// @Success      201   {object}  dto.WatchlistItem
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist [post]
func (h *Handler) AddWatchlist(c *gin.Context) {
	var req dto.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	item, err := h.svc.Watchlist.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveWatchlist godoc
// @Summary      Remove a symbol from the watchlist
// @Tags         watchlist
// @Param        symbol  path  string  true  "Stock symbol"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist/{symbol} [delete]
func (h *Handler) RemoveWatchlist(c *gin.Context) {
	if err := h.svc.Watchlist.Remove(c.Request.Context(), c.Param("symbol")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
