package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// EnrollmentStatus represents the review state of a provider enrollment
type EnrollmentStatus string

const (
	EnrollmentSubmitted EnrollmentStatus = "submitted"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
)

// Enrollment is a provider application. IdempotencyKey is generated by the
// client and is unique, so a retried submission never creates a second record.
type Enrollment struct {
	ID              int64
	IdempotencyKey  string
	UserID          int64
	ProviderID      int64
	FullName        string
	Email           string
	Specialty       string
	LicenseNumber   string
	ConsultationFee types.Cents
	Status          EnrollmentStatus
	CreatedAt       time.Time
}
