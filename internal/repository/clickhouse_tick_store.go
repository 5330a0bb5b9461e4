package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	pkgch "StockPulse/pkg/clickhouse"
)

var tickSchema = []string{
	`CREATE DATABASE IF NOT EXISTS stockpulse`,
	`CREATE TABLE IF NOT EXISTS stockpulse.ticks_raw (
		ts     DateTime64(3),
		symbol LowCardinality(String),
		price  Float64,
		volume Float64
	) ENGINE = MergeTree()
	ORDER BY (symbol, ts)
	TTL toDateTime(ts) + INTERVAL 30 DAY`,
}

// CHTickStore implements TickStore backed by ClickHouse.
type CHTickStore struct {
	client *pkgch.Client
	db     *sql.DB
	table  string
}

func NewCHTickStore(ch *pkgch.Client) domrepo.TickStore {
	return &CHTickStore{client: ch, db: ch.DB(), table: "stockpulse.ticks_raw"}
}

func (s *CHTickStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, tickSchema)
}

func (s *CHTickStore) Store(ctx context.Context, t *models.Tick) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, price, volume) VALUES (?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, t.Timestamp, t.Symbol, t.Price, t.Volume)
	return err
}

func (s *CHTickStore) StoreBatch(ctx context.Context, ticks []*models.Tick) error {
	if len(ticks) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(ticks); start += chunkSize {
		end := start + chunkSize
		if end > len(ticks) {
			end = len(ticks)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*4)
		for _, t := range ticks[start:end] {
			if t == nil || t.Symbol == "" || t.Timestamp.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?)")
			args = append(args, t.Timestamp, t.Symbol, t.Price, t.Volume)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, symbol, price, volume) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *CHTickStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHTickStore) Close() error {
	return nil // pool managed by pkg client
}
