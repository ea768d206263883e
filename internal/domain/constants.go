package domain

import "github.com/m04kA/SMC-ClinicBookingService/pkg/types"

// Booking constants
const (
	SlotDurationMinutes = 30
	DefaultBookingFee   = types.Cents(1000)
	DefaultCurrency     = "ZAR"
	PaymentTypeBooking  = "booking"
	MaxNotesLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
