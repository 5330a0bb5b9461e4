package api

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictHandler serves predictions and the async training API.
type PredictHandler struct {
	logger *xlogger.Logger
	train  *usecase.TrainUseCase
}

func NewPredictHandler(logger *xlogger.Logger, train *usecase.TrainUseCase) *PredictHandler {
	return &PredictHandler{logger: logger, train: train}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/predict/:symbol", h.Predict)
	g.POST("/train", h.Train)
	g.GET("/train/:id", h.TrainStatus)
}

func (h *PredictHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	pred, err := h.train.Predict(c.Request().Context(), req.Symbol, req.Horizon)
	if err != nil {
		h.logger.Error("predict usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, pred)
}

func (h *PredictHandler) Train(c echo.Context) error {
	req := &models.TrainRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	job, err := h.train.EnqueueTrain(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("train enqueue error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.AcceptedResponse(c, job)
}

func (h *PredictHandler) TrainStatus(c echo.Context) error {
	req := &models.TrainStatusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	job, err := h.train.JobStatus(c.Request().Context(), req.ID)
	if err != nil {
		h.logger.Error("train status error", xlogger.String("job_id", req.ID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, job)
}
