package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	pricing "github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/get_price"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_import_logs"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_skipped_imports"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/import_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/reset_deal_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/config"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/lock"
	httptransport "github.com/light-bringer/catalog-pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client

	ImportPrices    *import_prices.Interactor
	ResetDealPrices *reset_deal_prices.Interactor
	Handlers        httptransport.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	policy, err := domain.ParseResetPolicy(cfg.DealResetPolicy)
	if err != nil {
		return nil, err
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	opts := &ServiceOptions{SpannerClient: spannerClient}

	// 2. Import lock: Redis when configured, in-process otherwise
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts.RedisClient = rdb
		locker = lock.NewRedisLocker(rdb, "pricing:lock:")
	} else {
		log.Warn().Msg("REDIS_URL not set, price imports are serialized per process only")
	}

	// 3. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	// 4. Create repositories
	catalog := repo.NewCatalogStore(spannerClient, comm, clk)
	promotions := repo.NewPromotionRepo(spannerClient)
	audit := repo.NewAuditRepo(spannerClient)
	uploads := repo.NewUploadRepo(spannerClient)
	events := repo.NewEventsReadModel(spannerClient)

	// 5. Domain services
	engine := pricing.NewPriceEngine(pricing.NewPromotionResolver(promotions, catalog, clk), clk)

	// 6. Create command use cases (write operations)
	opts.ResetDealPrices = reset_deal_prices.NewInteractor(catalog, clk)
	opts.ImportPrices = import_prices.NewInteractor(catalog, audit, uploads, engine, opts.ResetDealPrices, locker, cfg.ImportLockTTL, clk)

	// 7. Create query use cases (read operations)
	getPriceQuery := get_price.NewQuery(catalog, engine)
	listSkippedQuery := list_skipped_imports.NewQuery(uploads, audit)
	listLogsQuery := list_import_logs.NewQuery(audit)
	listEventsQuery := list_events.NewQuery(events)

	// 8. Create HTTP handlers
	opts.Handlers = httptransport.Handlers{
		Imports: httptransport.NewImportHandler(opts.ImportPrices, listSkippedQuery, listLogsQuery, httptransport.ImportOptions{
			MaxUploadBytes:    cfg.MaxUploadBytes,
			DefaultValidation: cfg.PriceValidationDefault,
			DefaultPolicy:     policy,
		}),
		Prices: httptransport.NewPriceHandler(getPriceQuery),
		Events: httptransport.NewEventsHandler(listEventsQuery),
		Health: opts.healthChecks(),
	}

	return opts, nil
}

func (s *ServiceOptions) healthChecks() map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{
		"spanner": func(ctx context.Context) error {
			iter := s.SpannerClient.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
			defer iter.Stop()
			_, err := iter.Next()
			return err
		},
	}
	if s.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.RedisClient.Ping(ctx).Err()
		}
	}
	return checks
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
