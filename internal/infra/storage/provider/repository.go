package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Repository репозиторий врачей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет врача
func (r *Repository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	query, args, err := psqlbuilder.Insert("providers").
		Columns(
			"user_id",
			"full_name",
			"email",
			"specialty",
			"consultation_fee",
			"is_approved",
			"created_at",
			"updated_at",
		).
		Values(
			p.UserID,
			p.FullName,
			p.Email,
			p.Specialty,
			int64(p.ConsultationFee),
			p.IsApproved,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"full_name",
		"email",
		"specialty",
		"consultation_fee",
		"is_approved",
		"created_at",
		"updated_at",
	).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p                    domain.Provider
		fee                  int64
		createdAt, updatedAt types.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Specialty,
		&fee,
		&p.IsApproved,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	p.ConsultationFee = types.Cents(fee)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// SetApproved меняет флаг одобрения врача
func (r *Repository) SetApproved(ctx context.Context, id int64, approved bool, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("providers").
		Set("is_approved", approved).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetApproved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetApproved - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetApproved - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}
