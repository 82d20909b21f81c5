package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_price_import"
)

// UploadRepo implements contracts.UploadRepository.
type UploadRepo struct {
	client *spanner.Client
	model  *m_price_import.Model
}

// NewUploadRepo creates a new UploadRepo.
func NewUploadRepo(client *spanner.Client) contracts.UploadRepository {
	return &UploadRepo{
		client: client,
		model:  m_price_import.NewModel(),
	}
}

// Create implements contracts.UploadRepository.
func (r *UploadRepo) Create(ctx context.Context, u *domain.PriceUpload) error {
	return r.write(ctx, u)
}

// Update implements contracts.UploadRepository.
func (r *UploadRepo) Update(ctx context.Context, u *domain.PriceUpload) error {
	return r.write(ctx, u)
}

func (r *UploadRepo) write(ctx context.Context, u *domain.PriceUpload) error {
	data := &m_price_import.UploadData{
		UploadID:                u.ID,
		FileName:                u.FileName,
		ConsiderPriceValidation: u.ConsiderPriceValidation,
		Status:                  string(u.Status),
		ErrorMessage:            toNullString(u.Error),
		UploadedAt:              u.UploadedAt,
	}
	if u.ProcessedAt != nil {
		data.ProcessedAt = spanner.NullTime{Time: *u.ProcessedAt, Valid: true}
	}

	mut, err := r.model.UpsertUploadMut(data)
	if err != nil {
		return fmt.Errorf("failed to build upload mutation: %w", err)
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mut}); err != nil {
		return fmt.Errorf("failed to write upload %s: %w", u.ID, err)
	}
	return nil
}

// Get implements contracts.UploadRepository.
func (r *UploadRepo) Get(ctx context.Context, id string) (*domain.PriceUpload, error) {
	row, err := r.client.Single().ReadRow(ctx, m_price_import.UploadsTable, spanner.Key{id}, r.model.UploadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	var d m_price_import.UploadData
	if err := row.ToStruct(&d); err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	u := &domain.PriceUpload{
		ID:                      d.UploadID,
		FileName:                d.FileName,
		ConsiderPriceValidation: d.ConsiderPriceValidation,
		Status:                  domain.UploadStatus(d.Status),
		Error:                   fromNullString(d.ErrorMessage),
		UploadedAt:              d.UploadedAt,
	}
	if d.ProcessedAt.Valid {
		t := d.ProcessedAt.Time
		u.ProcessedAt = &t
	}
	return u, nil
}
