package api

import (
	"errors"

	"StockPulse/internal/repository"
	"StockPulse/internal/services/indicators"
	"StockPulse/internal/services/predict"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
)

// mapError translates domain errors into HTTP application errors.
func mapError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, predict.ErrModelNotFound):
		return xhttp.NotFoundError("no trained model for symbol; POST /api/train first").WithError(err)
	case errors.Is(err, repository.ErrJobNotFound):
		return xhttp.NotFoundError("training job not found").WithError(err)
	case errors.Is(err, indicators.ErrInsufficientData):
		return xhttp.InsufficientDataError(err.Error()).WithError(err)
	case errors.Is(err, indicators.ErrInvalidPeriod):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, usecase.ErrUpstream):
		return xhttp.UpstreamError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError(err.Error()).WithError(err)
	}
}
