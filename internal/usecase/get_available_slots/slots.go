package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// generateTimeSlots нарезает окно [start, end) на слоты фиксированной длины.
// Хвост короче slotDuration отбрасывается
func generateTimeSlots(start, end types.TimeString, slotDuration int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := start

	for current.IsBefore(end) {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(end) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}

// occupiedTimes собирает множество занятых времен начала
func occupiedTimes(reservations []*domain.Reservation) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{}, len(reservations))
	for _, r := range reservations {
		// Репозиторий уже отфильтровал отмененные, но проверяем еще раз
		if !r.BlocksSlot() {
			continue
		}
		occupied[normalize(r.StartTime)] = struct{}{}
	}
	return occupied
}

// buildSlots объединяет слоты всех окон, убирает дубли и помечает занятые
func buildSlots(
	rules []*domain.ScheduleRule,
	occupied map[types.TimeString]struct{},
	slotDuration int,
) ([]domain.Slot, error) {
	byTime := make(map[types.TimeString]domain.Slot)

	for _, rule := range rules {
		times, err := generateTimeSlots(rule.StartTime, rule.EndTime, slotDuration)
		if err != nil {
			return nil, err
		}

		for _, t := range times {
			key := normalize(t)
			_, taken := occupied[key]
			// При пересечении окон побеждает последнее
			byTime[key] = domain.Slot{Time: key, Available: !taken}
		}
	}

	result := make([]domain.Slot, 0, len(byTime))
	for _, slot := range byTime {
		result = append(result, slot)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time.IsBefore(result[j].Time)
	})

	return result, nil
}

// normalize приводит "9:00" и "09:00:00" к виду "09:00"
func normalize(t types.TimeString) types.TimeString {
	normalized, err := types.NewTimeStringFromString(string(t))
	if err != nil {
		return t
	}
	return normalized
}
