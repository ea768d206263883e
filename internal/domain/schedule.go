package domain

import "github.com/m04kA/SMC-ClinicBookingService/pkg/types"

// ScheduleRule is a recurring weekly availability window of a provider.
// DayOfWeek uses 1=Monday..7=Sunday. Several rules for the same day are
// independent windows and are never merged.
type ScheduleRule struct {
	ID         int64
	ProviderID int64
	DayOfWeek  int
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsActive   bool
}

// IsValid checks the day range and that the window is not empty
func (r *ScheduleRule) IsValid() bool {
	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		return false
	}
	if r.StartTime.Validate() != nil || r.EndTime.Validate() != nil {
		return false
	}
	return r.StartTime.IsBefore(r.EndTime)
}
