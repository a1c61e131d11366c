package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/SscSPs/remit_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler exposes the rate cache to clients.
type exchangeRateHandler struct {
	rateCache  portssvc.RateCacheSvcFacade
	currencies domain.CurrencyConfig
}

func newExchangeRateHandler(rc portssvc.RateCacheSvcFacade, currencies domain.CurrencyConfig) *exchangeRateHandler {
	return &exchangeRateHandler{rateCache: rc, currencies: currencies}
}

// registerExchangeRateRoutes registers the public exchange rate routes.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rc portssvc.RateCacheSvcFacade, currencies domain.CurrencyConfig) {
	h := newExchangeRateHandler(rc, currencies)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:currencyCode", h.getRate)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Refreshes the cache from the rate source when possible, then lists the rates of every sendable currency.
// @Tags exchange-rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Stale rates are still served when the source is down.
	if result := h.rateCache.Refresh(c.Request.Context()); !result.Success {
		logger.Warn("Serving cached rates after failed refresh")
	}

	rates, err := h.rateCache.ListRates(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getRate godoc
// @Summary Get an exchange rate
// @Description Returns the cached USD rate of one currency, fetching it if not cached yet.
// @Tags exchange-rates
// @Produce json
// @Param currencyCode path string true "ISO 4217 code, e.g. GBP"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not supported"
// @Failure 503 {object} dto.ErrorResponse "No exchange rate available"
// @Router /exchange-rates/{currencyCode} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("currency_code", code))

	if _, ok := h.currencies.RefreshAllowList()[code]; !ok {
		logger.Warn("Rate requested for unsupported currency")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Unsupported currency"})
		return
	}

	rate, err := h.rateCache.GetRate(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
