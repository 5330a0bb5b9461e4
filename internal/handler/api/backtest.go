package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BacktestHandler runs strategy simulations.
type BacktestHandler struct {
	logger   *xlogger.Logger
	backtest *usecase.BacktestUseCase
}

func NewBacktestHandler(logger *xlogger.Logger, backtest *usecase.BacktestUseCase) *BacktestHandler {
	return &BacktestHandler{logger: logger, backtest: backtest}
}

func (h *BacktestHandler) RegisterRoutes(e *echo.Echo) {
	e.Group("/api").POST("/backtest", h.Run)
}

func (h *BacktestHandler) Run(c echo.Context) error {
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.backtest.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("backtest usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.String("strategy", req.Strategy),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, result)
}
