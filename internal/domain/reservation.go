package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Reservation is a patient's booking of a provider slot.
// It is created pending/pending and moved once by the payment webhook
// to confirmed/paid or cancelled/failed.
type Reservation struct {
	ID         int64
	PatientID  int64
	ProviderID int64
	Date       types.Date
	StartTime  types.TimeString

	ConsultationFee types.Cents
	BookingFee      types.Cents
	TotalAmount     types.Cents

	Status           ReservationStatus
	PaymentStatus    PaymentStatus
	Notes            *string
	PaymentReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the reservation occupies its slot for availability purposes
func (r *Reservation) BlocksSlot() bool {
	return r.Status != StatusCancelled
}

// IsAwaitingPayment returns true while the webhook may still finalize the reservation
func (r *Reservation) IsAwaitingPayment() bool {
	return r.Status == StatusPending && r.PaymentStatus == PaymentPending
}

// IsOwnedBy returns true if the patient made this reservation
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.PatientID == userID
}

// ParseReservationStatus validates a status string
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}
