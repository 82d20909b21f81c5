package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/catalog-pricing-service/internal/config"
)

func main() {
	completedRetention := flag.Int("completed-retention", 30, "Retention days for completed events")
	failedRetention := flag.Int("failed-retention", 90, "Retention days for failed events")
	dryRun := flag.Bool("dry-run", false, "Show what would be deleted without deleting")
	flag.Parse()

	if err := run(*completedRetention, *failedRetention, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("outbox cleanup failed")
	}
}

func run(completedRetention, failedRetention int, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(cfg)

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	completedCutoff := now.AddDate(0, 0, -completedRetention)
	failedCutoff := now.AddDate(0, 0, -failedRetention)

	log.Info().
		Time("completed_cutoff", completedCutoff).
		Time("failed_cutoff", failedCutoff).
		Bool("dry_run", dryRun).
		Msg("starting outbox cleanup")

	cleaner := repo.NewOutboxCleaner(client)
	if dryRun {
		counts, err := cleaner.Count(ctx, completedCutoff, failedCutoff)
		if err != nil {
			return err
		}
		for status, n := range counts {
			log.Info().Str("status", status).Int64("count", n).Msg("would delete")
		}
		return nil
	}

	deleted, err := cleaner.Prune(ctx, completedCutoff, failedCutoff)
	if err != nil {
		return err
	}
	log.Info().Int64("deleted", deleted).Msg("outbox cleanup completed")
	return nil
}
