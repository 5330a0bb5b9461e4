package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsHandler serves the consolidated per-symbol signal view.
type SignalsHandler struct {
	logger  *xlogger.Logger
	signals *usecase.SignalsUseCase
}

func NewSignalsHandler(logger *xlogger.Logger, signals *usecase.SignalsUseCase) *SignalsHandler {
	return &SignalsHandler{logger: logger, signals: signals}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	e.Group("/api").GET("/signals/:symbol", h.Signals)
}

func (h *SignalsHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.signals.GetSignals(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("signals usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, res)
}
