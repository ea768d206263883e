package reservation

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

const table = "reservations"

var columns = []string{
	"id",
	"patient_id",
	"provider_id",
	"booking_date",
	"start_time",
	"consultation_fee",
	"booking_fee",
	"total_amount",
	"status",
	"payment_status",
	"notes",
	"payment_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Занятость слота здесь не проверяется.
// Если CreatedAt не задан, используется текущее время.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	if res.UpdatedAt.IsZero() {
		res.UpdatedAt = res.CreatedAt
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"patient_id",
			"provider_id",
			"booking_date",
			"start_time",
			"consultation_fee",
			"booking_fee",
			"total_amount",
			"status",
			"payment_status",
			"notes",
			"payment_reference",
			"created_at",
			"updated_at",
		).
		Values(
			res.PatientID,
			res.ProviderID,
			res.Date,
			res.StartTime,
			int64(res.ConsultationFee),
			int64(res.BookingFee),
			int64(res.TotalAmount),
			string(res.Status),
			string(res.PaymentStatus),
			res.Notes,
			res.PaymentReference,
			res.CreatedAt,
			res.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByPatientID получает бронирования пациента, новые сначала.
// Опционально фильтрует по статусу
func (r *Repository) GetByPatientID(ctx context.Context, patientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetBlockingByProviderAndDate получает неотмененные бронирования врача на дату.
// Используется для вычисления занятых слотов
func (r *Repository) GetBlockingByProviderAndDate(ctx context.Context, providerID int64, date types.Date) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByProviderAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// SetPaymentReference сохраняет ссылку платежа, отправленную в шлюз
func (r *Repository) SetPaymentReference(ctx context.Context, id int64, reference string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("payment_reference", reference).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// FinalizePending переводит бронирование в финальное состояние.
// Обновление условное: строка меняется только пока status = pending,
// поэтому подтвержденное или отмененное бронирование назад не откатывается.
// Возвращает ErrNotPending, если ни одна строка не обновилась
func (r *Repository) FinalizePending(
	ctx context.Context,
	id int64,
	status domain.ReservationStatus,
	paymentStatus domain.PaymentStatus,
	now time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(status)).
		Set("payment_status", string(paymentStatus)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: FinalizePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: FinalizePending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: FinalizePending - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                         domain.Reservation
		consultationFee, bookingFee int64
		totalAmount                 int64
		status, paymentStatus       string
		createdAt, updatedAt        types.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.PatientID,
		&res.ProviderID,
		&res.Date,
		&res.StartTime,
		&consultationFee,
		&bookingFee,
		&totalAmount,
		&status,
		&paymentStatus,
		&res.Notes,
		&res.PaymentReference,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.ConsultationFee = types.Cents(consultationFee)
	res.BookingFee = types.Cents(bookingFee)
	res.TotalAmount = types.Cents(totalAmount)
	res.Status = domain.ReservationStatus(status)
	res.PaymentStatus = domain.PaymentStatus(paymentStatus)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows iteration: %v", ErrScanRow, err)
	}

	return reservations, nil
}
