package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
)

// UseCase use case для расчета свободных слотов врача на дату
type UseCase struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	slotDuration    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		slotDuration:    domain.SlotDurationMinutes,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Ошибка чтения из БД не возвращается наружу: ответ содержит пустой список и Warning
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slots:      []domain.Slot{},
	}

	// 2. Получаем окна приема на день недели
	rules, err := uc.scheduleRepo.GetActiveByProviderAndDay(ctx, req.ProviderID, req.Date.Weekday())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to get schedule for provider=%d: %v", req.ProviderID, err)
		resp.Warning = ErrScheduleUnavailable
		return resp, nil
	}

	// 3. Получаем занятые записи на дату
	reservations, err := uc.reservationRepo.GetBlockingByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to get reservations for provider=%d: %v", req.ProviderID, err)
		resp.Warning = ErrReservationsUnavailable
		return resp, nil
	}

	// 4. Врач не принимает в этот день
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: provider=%d has no schedule on weekday=%d", req.ProviderID, req.Date.Weekday())
		return resp, nil
	}

	// 5. Нарезаем окна на слоты и помечаем занятые
	slots, err := buildSlots(rules, occupiedTimes(reservations), uc.slotDuration)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid schedule for provider=%d: %v", req.ProviderID, err)
		resp.Warning = fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
		return resp, nil
	}

	resp.Slots = slots
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, slots=%d", req.ProviderID, req.Date, len(slots))

	return resp, nil
}
