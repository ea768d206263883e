package domain

import "github.com/m04kA/SMC-ClinicBookingService/pkg/types"

// Slot represents a bookable start time of a provider on a given date
type Slot struct {
	Time      types.TimeString
	Available bool
}
