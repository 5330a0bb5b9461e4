package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler serves quotes and historical bars.
type MarketHandler struct {
	logger *xlogger.Logger
	market *usecase.MarketDataUseCase
}

func NewMarketHandler(logger *xlogger.Logger, market *usecase.MarketDataUseCase) *MarketHandler {
	return &MarketHandler{logger: logger, market: market}
}

// stockBarLimit bounds the bar slice embedded in the stock view.
const stockBarLimit = 90

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock/:symbol", h.Stock)
	g.GET("/history/:symbol", h.History)
}

func (h *MarketHandler) Stock(c echo.Context) error {
	req := &models.StockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()

	quote, err := h.market.GetQuote(ctx, req.Symbol)
	if err != nil {
		h.logger.Error("stock usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}

	bars, err := h.market.GetHistory(ctx, req.Symbol, req.Range, req.Interval, 0)
	if err != nil {
		h.logger.Error("stock history error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}

	view := &models.StockView{Symbol: quote.Symbol, Quote: quote, Bars: bars}
	// Indicators are best effort: a short range drops them instead of failing
	// the whole view.
	if set, err := usecase.ComputeIndicators(quote.Symbol, bars); err == nil {
		view.Indicators = set
	}
	if len(view.Bars) > stockBarLimit {
		view.Bars = view.Bars[len(view.Bars)-stockBarLimit:]
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *MarketHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	bars, err := h.market.GetHistory(c.Request().Context(), req.Symbol, req.Range, req.Interval, req.Limit)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, bars)
}
