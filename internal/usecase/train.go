package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	dservice "StockPulse/internal/domain/service"
	"StockPulse/internal/services/features"
	"StockPulse/internal/services/predict"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/queue"
	"StockPulse/pkg/util"
)

const trainJobType = "train"

var _ dservice.Predictor = (*TrainUseCase)(nil)

// TrainPayload is the queue message body for a training run.
type TrainPayload struct {
	JobID        string `json:"job_id"`
	Symbol       string `json:"symbol"`
	LookbackDays int    `json:"lookback_days"`
	HorizonBars  int    `json:"horizon_bars"`
	Epochs       int    `json:"epochs"`
}

// TrainUseCase enqueues training jobs and serves predictions from the
// in-process model registry.
type TrainUseCase struct {
	market   *MarketDataUseCase
	registry *predict.Registry
	jobs     drepo.JobStore
	queue    queue.QueueService
	metrics  drepo.Metrics
	l        *logger.Logger
	cfg      predict.TrainConfig
}

func NewTrainUseCase(
	market *MarketDataUseCase,
	registry *predict.Registry,
	jobs drepo.JobStore,
	q queue.QueueService,
	metrics drepo.Metrics,
	l *logger.Logger,
	cfg predict.TrainConfig,
) *TrainUseCase {
	return &TrainUseCase{
		market:   market,
		registry: registry,
		jobs:     jobs,
		queue:    q,
		metrics:  metrics,
		l:        l,
		cfg:      cfg,
	}
}

// EnqueueTrain records a queued job and publishes it for a worker to run.
func (uc *TrainUseCase) EnqueueTrain(ctx context.Context, req *models.TrainRequest) (*models.TrainJob, error) {
	symbol := util.NormalizeSymbol(req.Symbol)
	now := time.Now().UTC()

	job := &models.TrainJob{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		Status:       models.JobStatusQueued,
		LookbackDays: req.LookbackDays,
		HorizonBars:  req.HorizonBars,
		Epochs:       req.Epochs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if job.HorizonBars <= 0 {
		job.HorizonBars = uc.cfg.HorizonBars
	}
	if job.Epochs <= 0 {
		job.Epochs = uc.cfg.Epochs
	}

	if err := uc.jobs.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("record job: %w", err)
	}

	payload := &TrainPayload{
		JobID:        job.ID,
		Symbol:       symbol,
		LookbackDays: job.LookbackDays,
		HorizonBars:  job.HorizonBars,
		Epochs:       job.Epochs,
	}
	if err := uc.queue.PublishMessage(ctx, trainJobType, payload); err != nil {
		job.Status = models.JobStatusFailed
		job.Error = "enqueue failed: " + err.Error()
		_ = uc.jobs.Put(ctx, job)
		return nil, fmt.Errorf("enqueue train job: %w", err)
	}

	uc.metrics.RecordTrainJob(models.JobStatusQueued)
	uc.l.Info("train job enqueued",
		logger.String("job_id", job.ID),
		logger.String("symbol", symbol),
		logger.Int("lookback_days", job.LookbackDays))
	return job, nil
}

// JobStatus returns the stored status of a training job.
func (uc *TrainUseCase) JobStatus(ctx context.Context, id string) (*models.TrainJob, error) {
	return uc.jobs.Get(ctx, id)
}

// Predict scores the latest bars with the trained model for the symbol.
// Returns predict.ErrModelNotFound when no model has been trained.
func (uc *TrainUseCase) Predict(ctx context.Context, symbol string, horizon int) (*models.Prediction, error) {
	symbol = util.NormalizeSymbol(symbol)

	model, err := uc.registry.Get(symbol)
	if err != nil {
		return nil, err
	}
	if horizon <= 0 {
		horizon = model.HorizonBars
	}

	// Warmup bars plus slack so the final feature row exists.
	bars, err := uc.market.GetLatestBars(ctx, symbol, features.Warmup+21, drepo.TF1d)
	if err != nil {
		return nil, err
	}

	m, err := features.Extract(bars)
	if err != nil {
		return nil, err
	}
	latest := m.X[len(m.X)-1]

	probs, class, conf, err := model.Probabilities(latest)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordPrediction(class)
	return &models.Prediction{
		Symbol:        symbol,
		Timestamp:     bars[len(bars)-1].Bucket,
		Class:         class,
		Probabilities: probs,
		Confidence:    conf,
		HorizonBars:   horizon,
		Model: models.ModelInfo{
			TrainedAt:          model.TrainedAt,
			Samples:            model.Samples,
			ValidationAccuracy: model.ValAccuracy,
			Features:           features.Names,
		},
	}, nil
}

// TrainJobHandler consumes train messages from the job queue and runs the
// actual training, updating job status as it goes.
type TrainJobHandler struct {
	market   *MarketDataUseCase
	registry *predict.Registry
	jobs     drepo.JobStore
	metrics  drepo.Metrics
	l        *logger.Logger
	cfg      predict.TrainConfig
}

func NewTrainJobHandler(
	market *MarketDataUseCase,
	registry *predict.Registry,
	jobs drepo.JobStore,
	metrics drepo.Metrics,
	l *logger.Logger,
	cfg predict.TrainConfig,
) *TrainJobHandler {
	return &TrainJobHandler{
		market:   market,
		registry: registry,
		jobs:     jobs,
		metrics:  metrics,
		l:        l,
		cfg:      cfg,
	}
}

func (h *TrainJobHandler) Name() string { return "model-trainer" }
func (h *TrainJobHandler) Type() string { return trainJobType }

func (h *TrainJobHandler) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[TrainPayload](payload)
	if err != nil {
		return err
	}

	job, err := h.jobs.Get(ctx, p.JobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", p.JobID, err)
	}

	job.Status = models.JobStatusRunning
	if err := h.jobs.Put(ctx, job); err != nil {
		return err
	}
	h.metrics.RecordTrainJob(models.JobStatusRunning)

	model, err := h.train(ctx, p)
	if err != nil {
		job.Status = models.JobStatusFailed
		job.Error = err.Error()
		_ = h.jobs.Put(ctx, job)
		h.metrics.RecordTrainJob(models.JobStatusFailed)
		h.l.Error("train job failed",
			logger.String("job_id", job.ID),
			logger.String("symbol", job.Symbol),
			logger.Error(err))
		return err
	}

	h.registry.Put(model)

	job.Status = models.JobStatusDone
	job.Accuracy = model.ValAccuracy
	job.Samples = model.Samples
	if err := h.jobs.Put(ctx, job); err != nil {
		return err
	}
	h.metrics.RecordTrainJob(models.JobStatusDone)
	h.l.Info("train job done",
		logger.String("job_id", job.ID),
		logger.String("symbol", job.Symbol),
		logger.Float64("val_accuracy", model.ValAccuracy),
		logger.Int("samples", model.Samples))
	return nil
}

func (h *TrainJobHandler) train(ctx context.Context, p *TrainPayload) (*predict.Model, error) {
	lookback := p.LookbackDays
	if lookback <= 0 {
		lookback = 730
	}
	from := time.Now().UTC().AddDate(0, 0, -lookback)

	start := time.Now()
	bars, err := h.market.GetBarsSince(ctx, p.Symbol, from, drepo.TF1d)
	if err != nil {
		return nil, fmt.Errorf("fetch training bars: %w", err)
	}

	cfg := h.cfg
	if p.HorizonBars > 0 {
		cfg.HorizonBars = p.HorizonBars
	}
	if p.Epochs > 0 {
		cfg.Epochs = p.Epochs
	}

	model, err := predict.Train(p.Symbol, bars, cfg)
	if err != nil {
		return nil, err
	}
	h.metrics.RecordLatency("train", time.Since(start).Seconds())
	return model, nil
}

var _ queue.Job = (*TrainJobHandler)(nil)
