package import_prices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/reset_deal_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/lock"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/pricesheet"
)

// LockKey is the lock every import batch holds while it runs.
const LockKey = "price-import"

// DefaultLockTTL bounds how long a crashed batch can block the next one.
const DefaultLockTTL = 15 * time.Minute

// ErrImportInProgress is returned when another batch holds the import lock.
var ErrImportInProgress = errors.New("another price import is in progress")

// ErrImportLockLost is returned when a batch can no longer prove it holds the
// import lock. Rows already processed stay applied.
var ErrImportLockLost = errors.New("price import lost its lock")

// Request contains one uploaded price sheet.
type Request struct {
	FileName                string
	Content                 []byte
	ConsiderPriceValidation bool
	ResetPolicy             domain.ResetPolicy
}

// Result is the tally of a finished batch.
type Result struct {
	UploadID string
	Imported int
	Skipped  int
	Reset    int
}

// Interactor runs price sheet batches row by row. A row either updates one
// product and is recorded as imported, or is recorded as skipped; a bad row
// never stops the batch.
type Interactor struct {
	catalog  contracts.CatalogStore
	audit    contracts.AuditStore
	uploads  contracts.UploadRepository
	engine   *services.PriceEngine
	resetter *reset_deal_prices.Interactor
	locker   lock.Locker
	lockTTL  time.Duration
	clock    clock.Clock
}

// NewInteractor creates a new import prices interactor.
func NewInteractor(
	catalog contracts.CatalogStore,
	audit contracts.AuditStore,
	uploads contracts.UploadRepository,
	engine *services.PriceEngine,
	resetter *reset_deal_prices.Interactor,
	locker lock.Locker,
	lockTTL time.Duration,
	clock clock.Clock,
) *Interactor {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &Interactor{
		catalog:  catalog,
		audit:    audit,
		uploads:  uploads,
		engine:   engine,
		resetter: resetter,
		locker:   locker,
		lockTTL:  lockTTL,
		clock:    clock,
	}
}

// Execute processes one price sheet to completion. The batch ignores ctx
// cancellation so a dropped client does not leave the sheet half imported.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	ctx = context.WithoutCancel(ctx)

	policy := req.ResetPolicy
	if policy == "" {
		policy = domain.ResetNone
	}
	if _, err := domain.ParseResetPolicy(string(policy)); err != nil {
		return nil, err
	}

	hold, err := i.locker.Acquire(ctx, LockKey, i.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, ErrImportInProgress
		}
		return nil, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	defer func() {
		if err := hold.Release(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to release import lock")
		}
	}()

	upload := domain.NewPriceUpload(uuid.New().String(), req.FileName, req.ConsiderPriceValidation, i.clock.Now())
	if err := i.uploads.Create(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	upload.MarkProcessing()
	if err := i.uploads.Update(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to update upload: %w", err)
	}

	logger := log.With().Str("upload_id", upload.ID).Str("file", req.FileName).Logger()
	logger.Info().
		Bool("price_validation", req.ConsiderPriceValidation).
		Str("reset_policy", string(policy)).
		Msg("price import started")

	sheet, err := pricesheet.Read(req.FileName, req.Content)
	if err != nil {
		upload.MarkFailed(err.Error(), i.clock.Now())
		if uerr := i.uploads.Update(ctx, upload); uerr != nil {
			logger.Error().Err(uerr).Msg("failed to mark upload failed")
		}
		logger.Error().Err(err).Msg("price sheet unreadable")
		return nil, fmt.Errorf("failed to read price sheet: %w", err)
	}

	res := &Result{UploadID: upload.ID}

	if policy == domain.ResetAll {
		reset, err := i.resetter.Execute(ctx, &reset_deal_prices.Request{Reason: "import " + upload.ID})
		if err != nil {
			logger.Error().Err(err).Msg("deal price reset failed")
		} else {
			res.Reset += len(reset.Cleared)
		}
	}

	b := &batch{
		Interactor: i,
		upload:     upload,
		validate:   req.ConsiderPriceValidation,
		seen:       make(map[string]bool),
		hold:       hold,
		renewedAt:  i.clock.Now(),
		engine:     i.engine,
	}
	b.loadCategories(ctx)

	for _, row := range sheet.Rows {
		if err := b.keepLock(ctx); err != nil {
			upload.MarkFailed(err.Error(), i.clock.Now())
			if uerr := i.uploads.Update(ctx, upload); uerr != nil {
				logger.Error().Err(uerr).Msg("failed to mark upload failed")
			}
			logger.Error().Err(err).
				Int("imported", res.Imported).
				Int("skipped", res.Skipped).
				Msg("price import aborted")
			return res, err
		}
		if sku, ok := row.Get(pricesheet.ColSKU); ok {
			b.seen[sku] = true
		}
		if b.processRow(ctx, row) {
			res.Imported++
		} else {
			res.Skipped++
		}
	}

	if policy == domain.ResetStale {
		reset, err := i.resetter.Execute(ctx, &reset_deal_prices.Request{
			Keep:   b.seen,
			Reason: "stale after import " + upload.ID,
		})
		if err != nil {
			logger.Error().Err(err).Msg("stale deal price reset failed")
		} else {
			res.Reset += len(reset.Cleared)
		}
	}

	now := i.clock.Now()
	if err := i.audit.RecordImportLog(ctx, &domain.ImportLog{
		ID:            uuid.New().String(),
		UploadID:      upload.ID,
		FileName:      req.FileName,
		ImportedCount: res.Imported,
		SkippedCount:  res.Skipped,
		ResetCount:    res.Reset,
		CreatedAt:     now,
	}); err != nil {
		logger.Error().Err(err).Msg("failed to write import log")
	}

	upload.MarkCompleted(now)
	if err := i.uploads.Update(ctx, upload); err != nil {
		logger.Error().Err(err).Msg("failed to mark upload completed")
	}

	logger.Info().
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Int("reset", res.Reset).
		Msg("price import finished")
	return res, nil
}

// batch carries the state shared by the rows of one upload.
type batch struct {
	*Interactor
	upload   *domain.PriceUpload
	validate bool
	seen     map[string]bool

	hold      lock.Hold
	renewedAt time.Time

	// engine shadows the interactor's engine with one reading categories
	// from tree when the tree could be loaded.
	engine *services.PriceEngine
	tree   *domain.CategoryTree
}

// loadCategories reads the category tree once so price validation resolves
// category promotions without a lookup per row. On failure the batch keeps
// the store-backed engine.
func (b *batch) loadCategories(ctx context.Context) {
	tree, err := b.catalog.LoadCategoryTree(ctx)
	if err != nil {
		log.Warn().Err(err).Str("upload_id", b.upload.ID).Msg("category tree unavailable, resolving categories per row")
		return
	}
	b.tree = tree
	b.engine = b.Interactor.engine.WithCategories(services.NewTreeCategoryReader(tree))
}

// remember adds a category created mid-batch to the tree.
func (b *batch) remember(c *domain.Category) {
	if b.tree == nil {
		return
	}
	if _, ok := b.tree.Get(c.ID); ok {
		return
	}
	if err := b.tree.Add(c); err != nil {
		log.Warn().Err(err).Str("category_id", c.ID).Msg("failed to add category to batch tree")
	}
}

// keepLock extends the import lock once a third of its TTL has passed. A
// hold that is gone ends the batch. A failed extension is tolerated until
// the last confirmed expiry.
func (b *batch) keepLock(ctx context.Context) error {
	now := b.clock.Now()
	if now.Sub(b.renewedAt) < b.lockTTL/3 {
		return nil
	}
	err := b.hold.Extend(ctx, b.lockTTL)
	if err == nil {
		b.renewedAt = now
		return nil
	}
	if errors.Is(err, lock.ErrLockLost) {
		return fmt.Errorf("%w: %v", ErrImportLockLost, err)
	}
	if !now.Before(b.renewedAt.Add(b.lockTTL)) {
		return fmt.Errorf("%w: %v", ErrImportLockLost, err)
	}
	log.Warn().Err(err).Str("upload_id", b.upload.ID).Msg("failed to extend import lock")
	return nil
}

// processRow runs one row and records its outcome. It reports whether the
// row was imported.
func (b *batch) processRow(ctx context.Context, row pricesheet.Row) (imported bool) {
	var parsed *parsedRow
	defer func() {
		if r := recover(); r != nil {
			b.recordSkip(ctx, row, parsed, fmt.Errorf("unexpected error: %v", r))
			imported = false
		}
	}()

	parsed, err := b.parse(row)
	if err != nil {
		b.recordSkip(ctx, row, parsed, err)
		return false
	}
	if err := b.apply(ctx, parsed); err != nil {
		b.recordSkip(ctx, row, parsed, err)
		return false
	}
	return true
}

func (b *batch) requiredColumns() []string {
	cols := []string{pricesheet.ColSKU, pricesheet.ColProductName, pricesheet.ColCategory, pricesheet.ColSubcategory}
	if b.validate {
		cols = append(cols, pricesheet.ColMRP, pricesheet.ColNetPrice)
	}
	return cols
}

// parse checks the required columns and converts prices.
func (b *batch) parse(row pricesheet.Row) (*parsedRow, error) {
	if row.Err != nil {
		return nil, row.Err
	}
	for _, col := range b.requiredColumns() {
		if _, ok := row.Get(col); !ok {
			return nil, missingColumn(col)
		}
	}

	p := &parsedRow{
		number:      row.Number,
		sku:         row.Value(pricesheet.ColSKU),
		name:        row.Value(pricesheet.ColProductName),
		category:    domain.NormalizeCategoryName(row.Value(pricesheet.ColCategory)),
		subcategory: domain.NormalizeCategoryName(row.Value(pricesheet.ColSubcategory)),
	}

	if raw, ok := row.Get(pricesheet.ColMRP); ok {
		mrp, err := parsePrice(raw)
		if err != nil {
			return p, invalidPrice(pricesheet.ColMRP, raw, err)
		}
		p.mrp = mrp
	}
	if raw, ok := row.Get(pricesheet.ColNetPrice); ok {
		net, err := parsePrice(raw)
		if err != nil {
			return p, invalidPrice(pricesheet.ColNetPrice, raw, err)
		}
		p.netPrice = net
	}
	if p.netPrice == nil {
		return p, reject(ReasonNoNetPrice, SuggestAddColumn)
	}
	return p, nil
}

func parsePrice(raw string) (*domain.Money, error) {
	m, err := domain.ParseCurrency(raw)
	if err != nil {
		return nil, err
	}
	if !m.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}
	return m, nil
}

// apply runs the catalog side of one parsed row.
func (b *batch) apply(ctx context.Context, row *parsedRow) error {
	if b.validate {
		existing, err := b.catalog.GetProductBySKU(ctx, row.sku)
		if errors.Is(err, domain.ErrProductNotFound) {
			return reject(ReasonSKUNotFound, SuggestCheckSKU)
		}
		if err != nil {
			return err
		}
		current, err := b.engine.EffectivePrice(ctx, existing, b.clock.Now())
		if err != nil {
			return err
		}
		if row.netPrice.LessThan(current) {
			return undercut(row.netPrice, current)
		}
	}

	category, err := b.catalog.GetOrCreateCategory(ctx, row.category, "")
	if err != nil {
		return err
	}
	b.remember(category)
	subcategory, err := b.catalog.GetOrCreateCategory(ctx, row.subcategory, category.ID)
	if err != nil {
		return err
	}
	b.remember(subcategory)

	product, created, err := b.catalog.GetOrCreateProduct(ctx, row.sku, contracts.ProductDefaults{
		Name:          row.name,
		CategoryID:    category.ID,
		SubcategoryID: subcategory.ID,
		MRP:           row.mrp,
	})
	if row.mrp == nil && errors.Is(err, domain.ErrInvalidPrice) {
		return reject(ReasonMRPRequired, SuggestAddMRP)
	}
	if err != nil {
		return err
	}
	defer product.ClearEvents()

	var previous *domain.Money
	if !created {
		previous = product.CurrentPrice()
		if previous.Equals(row.netPrice) {
			return &RowRejection{
				Reason:           ReasonPriceUnchanged,
				Suggestion:       SuggestChangePrice,
				CurrentSalePrice: product.SalePrice(),
			}
		}
	}

	if _, err := product.ApplyImportedPrice(domain.ImportedPrice{
		CategoryID:    category.ID,
		SubcategoryID: subcategory.ID,
		MRP:           row.mrp,
		NetPrice:      row.netPrice,
	}, b.clock.Now()); err != nil {
		return err
	}
	if err := b.catalog.SaveProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to save product %s: %w", row.sku, err)
	}

	if err := b.audit.RecordImported(ctx, &domain.ImportedProduct{
		ID:            uuid.New().String(),
		UploadID:      b.upload.ID,
		ProductID:     product.ID(),
		SKU:           product.SKU(),
		MRP:           product.MRP(),
		PreviousPrice: previous,
		UpdatedPrice:  product.SalePrice(),
		ImportedAt:    b.clock.Now(),
	}); err != nil {
		log.Error().Err(err).Str("upload_id", b.upload.ID).Str("sku", row.sku).Msg("failed to record imported product")
	}
	return nil
}

// recordSkip writes the skip audit row. parsed may be nil when the row never
// got past column checks.
func (b *batch) recordSkip(ctx context.Context, row pricesheet.Row, parsed *parsedRow, cause error) {
	rec := &domain.SkippedPriceImport{
		ID:          uuid.New().String(),
		UploadID:    b.upload.ID,
		RowNumber:   row.Number,
		SKU:         row.Value(pricesheet.ColSKU),
		ProductName: row.Value(pricesheet.ColProductName),
		Reason:      cause.Error(),
		Suggestion:  SuggestCheckFormat,
		CreatedAt:   b.clock.Now(),
	}
	if parsed != nil {
		rec.MRP = parsed.mrp
		rec.Price = parsed.netPrice
	}

	var rejection *RowRejection
	if errors.As(cause, &rejection) {
		rec.Suggestion = rejection.Suggestion
		rec.CurrentSalePrice = rejection.CurrentSalePrice
	}

	log.Debug().
		Str("upload_id", b.upload.ID).
		Int("row", row.Number).
		Str("sku", rec.SKU).
		Str("reason", rec.Reason).
		Msg("price row skipped")

	if err := b.audit.RecordSkipped(ctx, rec); err != nil {
		log.Error().Err(err).Str("upload_id", b.upload.ID).Int("row", row.Number).Msg("failed to record skipped row")
	}
}
