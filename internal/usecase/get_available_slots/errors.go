package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrScheduleUnavailable отдается как предупреждение, когда не удалось прочитать расписание
	ErrScheduleUnavailable = errors.New("schedule is temporarily unavailable")

	// ErrReservationsUnavailable отдается как предупреждение, когда не удалось прочитать записи
	ErrReservationsUnavailable = errors.New("reservations are temporarily unavailable")
)
