package create_reservation

import (
	createReservation "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// CreateReservationRequest HTTP request model. ID пациента берется из токена
type CreateReservationRequest struct {
	ProviderID int64   `json:"providerId" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"` // "2026-11-02"
	StartTime  string  `json:"startTime" validate:"required,datetime=15:04"` // "10:00"
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(patientID int64) (*createReservation.Request, error) {
	date, err := types.NewDateFromString(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		PatientID:  patientID,
		ProviderID: r.ProviderID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}
