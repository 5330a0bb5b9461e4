package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler serves headlines and aggregated sentiment.
type NewsHandler struct {
	logger *xlogger.Logger
	news   *usecase.NewsUseCase
}

func NewNewsHandler(logger *xlogger.Logger, news *usecase.NewsUseCase) *NewsHandler {
	return &NewsHandler{logger: logger, news: news}
}

func (h *NewsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/news/:symbol", h.News)
	g.GET("/sentiment/:symbol", h.Sentiment)
}

func (h *NewsHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	articles, err := h.news.GetNews(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		h.logger.Error("news usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, articles)
}

func (h *NewsHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	agg, err := h.news.GetSentiment(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		h.logger.Error("sentiment usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, agg)
}
