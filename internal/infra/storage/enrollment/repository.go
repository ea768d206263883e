package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

const uniqueViolation = "23505"

// Repository репозиторий заявок врачей на подключение
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку. Повтор ключа идемпотентности дает ErrDuplicateKey
func (r *Repository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = domain.EnrollmentSubmitted
	}

	query, args, err := psqlbuilder.Insert("provider_enrollments").
		Columns(
			"idempotency_key",
			"user_id",
			"provider_id",
			"full_name",
			"email",
			"specialty",
			"license_number",
			"consultation_fee",
			"status",
			"created_at",
		).
		Values(
			e.IdempotencyKey,
			e.UserID,
			e.ProviderID,
			e.FullName,
			e.Email,
			e.Specialty,
			e.LicenseNumber,
			int64(e.ConsultationFee),
			string(e.Status),
			e.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// GetByIdempotencyKey ищет заявку по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"idempotency_key",
		"user_id",
		"provider_id",
		"full_name",
		"email",
		"specialty",
		"license_number",
		"consultation_fee",
		"status",
		"created_at",
	).
		From("provider_enrollments").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	var (
		e         domain.Enrollment
		fee       int64
		status    string
		createdAt types.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.IdempotencyKey,
		&e.UserID,
		&e.ProviderID,
		&e.FullName,
		&e.Email,
		&e.Specialty,
		&e.LicenseNumber,
		&fee,
		&status,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan enrollment: %v", ErrScanRow, err)
	}

	e.ConsultationFee = types.Cents(fee)
	e.Status = domain.EnrollmentStatus(status)
	e.CreatedAt = createdAt.Time

	return &e, nil
}

// SetStatusByProvider меняет статус заявок врача (после решения администратора)
func (r *Repository) SetStatusByProvider(ctx context.Context, providerID int64, status domain.EnrollmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("provider_enrollments").
		Set("status", string(status)).
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatusByProvider - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetStatusByProvider - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	// sqlite в тестах
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
