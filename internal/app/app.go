// Package app wires the components together and runs the sync loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gkpulse/bixquiz/internal/clock"
	"github.com/gkpulse/bixquiz/internal/config"
	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/metrics"
	"github.com/gkpulse/bixquiz/internal/pipeline"
	"github.com/gkpulse/bixquiz/internal/scraper"
	"github.com/gkpulse/bixquiz/internal/storage"
	"github.com/gkpulse/bixquiz/internal/telegram"
	"github.com/gkpulse/bixquiz/internal/translate"
)

// Run builds the pipeline and publisher from config and cycles forever:
// sync, publish whatever is new, sleep, repeat. Only context cancellation
// stops the loop; a failed cycle is logged and the next one starts after
// the normal interval.
func Run(ctx context.Context, cfg *config.Config) error {
	src, err := scraper.LoadSource(cfg.SourceConfigPath)
	if err != nil {
		return fmt.Errorf("load source config: %w", err)
	}

	translator := translate.New(cfg)
	defer translator.Close()

	pipe := pipeline.New(
		scraper.New(src, cfg.RequestTimeout),
		translator,
		func(ctx context.Context) (pipeline.Store, error) {
			return storage.New(ctx, cfg.MongoURI)
		},
		clock.NewIST(),
	)

	publisher := telegram.NewPublisher(telegram.NewBot(cfg.TelegramToken, cfg.TelegramChannel), cfg.SendSpacing)

	logger.Info("sync loop starting", "interval", cfg.SyncInterval, "source", src.BaseURL)

	for {
		runCycle(ctx, pipe, publisher)

		select {
		case <-ctx.Done():
			logger.Info("sync loop stopping")
			return ctx.Err()
		case <-time.After(cfg.SyncInterval):
		}
	}
}

// runCycle executes one scrape-translate-store-publish cycle. Errors and
// panics stop at this boundary so the loop itself never dies.
func runCycle(ctx context.Context, pipe *pipeline.Pipeline, publisher *telegram.Publisher) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("panic in cycle: %v", r)
			logger.Error(msg)
			metrics.Global.SetError(msg)
		}
	}()

	start := time.Now()

	result, err := pipe.Run(ctx)
	if err != nil {
		logger.Error("cycle failed", "error", err)
		metrics.Global.SetError(err.Error())
		return
	}

	metrics.Global.RecordCycleTime(time.Since(start))
	metrics.Global.SetLastRun()

	if len(result.Questions) == 0 {
		logger.Info("no new questions found",
			"skipped_days", len(result.SkippedDays), "parse_errors", len(result.ParseErrors))
		return
	}

	logger.Info("publishing new questions",
		"count", len(result.Questions), "skipped_days", len(result.SkippedDays), "parse_errors", len(result.ParseErrors))
	publisher.PublishAll(ctx, result.Questions)
}
