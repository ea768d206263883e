package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Provider is a doctor offering consultations on the marketplace
type Provider struct {
	ID              int64
	UserID          int64
	FullName        string
	Email           string
	Specialty       string
	ConsultationFee types.Cents
	IsApproved      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
