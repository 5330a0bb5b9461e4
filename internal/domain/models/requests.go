package models

// Requests for HTTP endpoints. Defined in domain for consistency and reuse.

type StockRequest struct {
	Symbol   string `param:"symbol" json:"symbol" validate:"required"`
	Range    string `query:"range" json:"range" default:"3mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d"`
}

type HistoryRequest struct {
	Symbol   string `param:"symbol" json:"symbol" validate:"required"`
	Range    string `query:"range" json:"range" default:"1y" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d"`
	Limit    int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=5000"`
}

type IndicatorsRequest struct {
	Symbol   string `param:"symbol" json:"symbol" validate:"required"`
	Range    string `query:"range" json:"range" default:"6mo" validate:"oneof=1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d"`
}

type PredictRequest struct {
	Symbol  string `param:"symbol" json:"symbol" validate:"required"`
	Horizon int    `query:"horizon" json:"horizon" default:"1" validate:"gte=1,lte=20"`
}

type TrainRequest struct {
	Symbol       string `json:"symbol" validate:"required"`
	LookbackDays int    `json:"lookback_days" default:"730" validate:"gte=60,lte=3650"`
	HorizonBars  int    `json:"horizon_bars" default:"1" validate:"gte=1,lte=20"`
	Epochs       int    `json:"epochs" default:"200" validate:"gte=10,lte=5000"`
}

type TrainStatusRequest struct {
	ID string `param:"id" json:"id" validate:"required,uuid"`
}

type BacktestRequest struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Strategy       string  `json:"strategy" default:"rsi_cross" validate:"oneof=rsi_cross classifier"`
	Range          string  `json:"range" default:"1y" validate:"oneof=3mo 6mo 1y 2y 5y max"`
	InitialCapital float64 `json:"initial_capital" default:"10000" validate:"gt=0"`
	CommissionRate float64 `json:"commission_rate" default:"0.001" validate:"gte=0,lte=0.05"`
	SlippageBps    float64 `json:"slippage_bps" default:"5" validate:"gte=0,lte=100"`
	StopLossPct    float64 `json:"stop_loss_pct" default:"0.05" validate:"gte=0,lte=0.5"`
	TakeProfitPct  float64 `json:"take_profit_pct" default:"0.1" validate:"gte=0,lte=1"`
}

type NewsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}

type SentimentRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=50"`
}

type SignalsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}
