package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/import_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/config"
	"github.com/light-bringer/catalog-pricing-service/internal/services"
)

func main() {
	file := flag.String("file", "", "Price sheet to import (.csv or .xlsx, required)")
	validate := flag.Bool("validate", false, "Reject rows whose net price undercuts the current effective price")
	policy := flag.String("reset-policy", "", "Deal price reset policy: none, stale or all (default from DEAL_RESET_POLICY)")
	flag.Parse()

	if err := run(*file, *validate, *policy); err != nil {
		log.Fatal().Err(err).Msg("price import failed")
	}
}

func run(file string, validate bool, policyName string) error {
	if file == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(cfg)

	if policyName == "" {
		policyName = cfg.DealResetPolicy
	}
	policy, err := domain.ParseResetPolicy(policyName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	ctx := context.Background()
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	res, err := serviceOpts.ImportPrices.Execute(ctx, &import_prices.Request{
		FileName:                filepath.Base(file),
		Content:                 content,
		ConsiderPriceValidation: validate,
		ResetPolicy:             policy,
	})
	if err != nil {
		return err
	}

	fmt.Printf("upload %s: imported=%d skipped=%d reset=%d\n", res.UploadID, res.Imported, res.Skipped, res.Reset)
	return nil
}
