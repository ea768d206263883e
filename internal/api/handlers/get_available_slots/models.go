package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID int64           `json:"providerId"`
	Date       string          `json:"date"`
	Slots      []AvailableSlot `json:"slots"`
	Warning    string          `json:"warning,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	out := &AvailableSlotsResponse{
		ProviderID: resp.ProviderID,
		Date:       resp.Date.String(),
		Slots:      slots,
	}
	if resp.Warning != nil {
		out.Warning = resp.Warning.Error()
	}
	return out
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.NewDateFromString(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		Date:       date,
	}, nil
}
