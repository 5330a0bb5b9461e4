package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler serves the technical indicator snapshot.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analysis *usecase.AnalysisUseCase
}

func NewAnalysisHandler(logger *xlogger.Logger, analysis *usecase.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.Group("/api").GET("/indicators/:symbol", h.Indicators)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	set, err := h.analysis.GetIndicators(c.Request().Context(), req.Symbol, req.Range, req.Interval)
	if err != nil {
		h.logger.Error("indicators usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, set)
}
