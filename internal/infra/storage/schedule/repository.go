package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания врачей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет правило расписания
func (r *Repository) Create(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	if !rule.IsValid() {
		return nil, fmt.Errorf("%w: day=%d, %s-%s", ErrInvalidRule, rule.DayOfWeek, rule.StartTime, rule.EndTime)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_schedules").
		Columns("provider_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(rule.ProviderID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// GetActiveByProviderAndDay возвращает активные правила врача на день недели (1=пн..7=вс)
func (r *Repository) GetActiveByProviderAndDay(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
	).
		From("provider_schedules").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"day_of_week": dayOfWeek,
			"is_active":   true,
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		var rule domain.ScheduleRule
		if err := rows.Scan(
			&rule.ID,
			&rule.ProviderID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByProviderAndDay - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDay - rows iteration: %v", ErrScanRow, err)
	}

	return rules, nil
}
