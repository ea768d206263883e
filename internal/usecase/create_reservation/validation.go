package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// validateRequest проверяет только форму запроса и возвращает время начала в виде HH:MM.
// Занятость слота здесь не проверяется
func validateRequest(req *Request) (types.TimeString, error) {
	if req.PatientID <= 0 {
		return "", fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return "", fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(string(req.StartTime))
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	minutes, err := startTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Слот должен начинаться на границе сетки и целиком помещаться в сутки
	if minutes%domain.SlotDurationMinutes != 0 || minutes+domain.SlotDurationMinutes > 24*60 {
		return "", fmt.Errorf("%w: startTime must be on a %d-minute boundary", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return startTime, nil
}
