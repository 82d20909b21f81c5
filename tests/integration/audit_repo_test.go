//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

func TestUploadRepository_Lifecycle(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	uploads := repo.NewUploadRepo(client)
	now := time.Now().UTC().Truncate(time.Microsecond)

	upload := domain.NewPriceUpload("upload-1", "prices.csv", true, now)
	require.NoError(t, uploads.Create(ctx, upload))

	loaded, err := uploads.Get(ctx, "upload-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UploadPending, loaded.Status)
	assert.True(t, loaded.ConsiderPriceValidation)
	assert.Nil(t, loaded.ProcessedAt)

	upload.MarkProcessing()
	upload.MarkFailed("empty sheet", now.Add(time.Minute))
	require.NoError(t, uploads.Update(ctx, upload))

	loaded, err = uploads.Get(ctx, "upload-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UploadFailed, loaded.Status)
	assert.Equal(t, "empty sheet", loaded.Error)
	require.NotNil(t, loaded.ProcessedAt)
	assert.True(t, now.Add(time.Minute).Equal(*loaded.ProcessedAt))

	_, err = uploads.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestAuditRepository_RecordsAndLists(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	audit := repo.NewAuditRepo(client)
	uploads := repo.NewUploadRepo(client)
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, uploads.Create(ctx, domain.NewPriceUpload("upload-1", "prices.csv", false, now)))

	for _, row := range []int{7, 3} {
		require.NoError(t, audit.RecordSkipped(ctx, &domain.SkippedPriceImport{
			ID:               fmt.Sprintf("skip-%d", row),
			UploadID:         "upload-1",
			RowNumber:        row,
			SKU:              "SKU-X",
			Price:            domain.MustParseMoney("10"),
			CurrentSalePrice: domain.MustParseMoney("12"),
			Reason:           "price unchanged",
			Suggestion:       "Change price to create a new update",
			CreatedAt:        now,
		}))
	}

	skipped, err := audit.ListSkipped(ctx, "upload-1")
	require.NoError(t, err)
	require.Len(t, skipped, 2)
	assert.Equal(t, 3, skipped[0].RowNumber)
	assert.Equal(t, 7, skipped[1].RowNumber)
	assert.Nil(t, skipped[0].MRP)
	assert.Equal(t, "12.00", skipped[0].CurrentSalePrice.String())
	assert.Equal(t, "price unchanged", skipped[0].Reason)

	require.NoError(t, audit.RecordImported(ctx, &domain.ImportedProduct{
		ID:           "imp-1",
		UploadID:     "upload-1",
		ProductID:    "product-1",
		SKU:          "SKU-1",
		MRP:          domain.MustParseMoney("100"),
		UpdatedPrice: domain.MustParseMoney("90"),
		ImportedAt:   now,
	}))

	imported, err := audit.ListImported(ctx, "upload-1")
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Nil(t, imported[0].PreviousPrice, "created products have no previous price")
	assert.Equal(t, "90.00", imported[0].UpdatedPrice.String())

	require.NoError(t, audit.RecordImportLog(ctx, &domain.ImportLog{ID: "log-1", UploadID: "upload-1", FileName: "a.csv", ImportedCount: 1, SkippedCount: 2, CreatedAt: now}))
	require.NoError(t, audit.RecordImportLog(ctx, &domain.ImportLog{ID: "log-2", UploadID: "upload-1", FileName: "b.csv", ResetCount: 4, CreatedAt: now.Add(time.Hour)}))

	logs, err := audit.ListImportLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-2", logs[0].ID)
	assert.Equal(t, 4, logs[0].ResetCount)

	logs, err = audit.ListImportLogs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
