package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/storefront/internal/service"
	"github.com/dukerupert/storefront/internal/telemetry"
)

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// Interval is how often the report is refreshed
	Interval time.Duration

	// Window is the trailing range each report covers
	Window time.Duration

	// Timeout bounds a single report run
	Timeout time.Duration
}

// Reporter computes abandonment over a time range.
type Reporter interface {
	AbandonedCarts(ctx context.Context, start, end time.Time) (*service.AbandonmentReport, error)
}

// AbandonmentWorker periodically recomputes cart abandonment over a
// trailing window and publishes it as gauges.
type AbandonmentWorker struct {
	config  Config
	reports Reporter
	logger  *slog.Logger
	now     func() time.Time
}

// NewAbandonmentWorker creates a worker reading from reports
func NewAbandonmentWorker(reports Reporter, config Config, logger *slog.Logger) *AbandonmentWorker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}
	if config.Window <= 0 {
		config.Window = 24 * time.Hour
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &AbandonmentWorker{
		config:  config,
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

// Start runs a report immediately and then on every tick until ctx is
// cancelled. A tick is skipped while the previous run is still going.
func (w *AbandonmentWorker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"interval", w.config.Interval,
		"window", w.config.Window,
	)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	sem := make(chan struct{}, 1)
	var wg sync.WaitGroup

	run := func() {
		select {
		case sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				_ = w.RunOnce(ctx)
			}()
		default:
			w.logger.Debug("previous report still running, skipping tick", "worker_id", w.config.WorkerID)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			run()
		}
	}
}

// RunOnce computes the report for the window ending now.
func (w *AbandonmentWorker) RunOnce(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	end := w.now().UTC()
	start := end.Add(-w.config.Window)

	report, err := w.reports.AbandonedCarts(runCtx, start, end)
	if err != nil {
		if telemetry.Business != nil {
			telemetry.Business.AbandonmentRuns.WithLabelValues("failed").Inc()
		}
		w.logger.Error("abandonment report failed",
			"worker_id", w.config.WorkerID,
			"error", err,
		)
		return err
	}

	if telemetry.Business != nil {
		telemetry.Business.AbandonmentRuns.WithLabelValues("ok").Inc()
		telemetry.Business.AbandonedCarts.Set(float64(report.AbandonedCarts))
		telemetry.Business.AbandonmentRate.Set(report.AbandonmentRate.InexactFloat64())
		telemetry.Business.PotentialRevenueLost.Set(report.PotentialRevenueLost.InexactFloat64())
	}

	w.logger.Info("abandonment report refreshed",
		"worker_id", w.config.WorkerID,
		"total_carts", report.TotalCarts,
		"abandoned_carts", report.AbandonedCarts,
		"abandonment_rate", report.AbandonmentRate.String(),
	)
	return nil
}
