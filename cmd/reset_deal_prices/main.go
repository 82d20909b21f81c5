package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/reset_deal_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/config"
	"github.com/light-bringer/catalog-pricing-service/internal/services"
)

func main() {
	skus := flag.String("skus", "", "Comma-separated SKUs to reset (default: every product holding a deal price)")
	reason := flag.String("reason", "manual reset", "Reason recorded in the logs")
	flag.Parse()

	if err := run(*skus, *reason); err != nil {
		log.Fatal().Err(err).Msg("deal price reset failed")
	}
}

func run(skuList, reason string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(cfg)

	var only []string
	for _, sku := range strings.Split(skuList, ",") {
		if sku = strings.TrimSpace(sku); sku != "" {
			only = append(only, sku)
		}
	}

	ctx := context.Background()
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	res, err := serviceOpts.ResetDealPrices.Execute(ctx, &reset_deal_prices.Request{Only: only, Reason: reason})
	if err != nil {
		return err
	}

	fmt.Printf("cleared=%d failed=%d\n", len(res.Cleared), len(res.Failed))
	if len(res.Failed) > 0 {
		return fmt.Errorf("failed to reset %s", strings.Join(res.Failed, ", "))
	}
	return nil
}
