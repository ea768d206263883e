package get_available_slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetActiveByProviderAndDay(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.ScheduleRule, error) {
	args := m.Called(ctx, providerID, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleRule), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetBlockingByProviderAndDate(ctx context.Context, providerID int64, date types.Date) ([]*domain.Reservation, error) {
	args := m.Called(ctx, providerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

// 2026-11-02 понедельник
var monday = types.MustDate("2026-11-02")

func morningRule() []*domain.ScheduleRule {
	return []*domain.ScheduleRule{
		{ID: 1, ProviderID: 3, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsActive: true},
	}
}

func newUseCase(schedules *MockScheduleRepository, reservations *MockReservationRepository) *UseCase {
	return NewUseCase(schedules, reservations, logger.Nop())
}

func times(slots []domain.Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestUseCase_Execute_SlotsFromRule(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return(morningRule(), nil)
	reservations.On("GetBlockingByProviderAndDate", mock.Anything, int64(3), monday).Return([]*domain.Reservation{}, nil)

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	assert.Nil(t, resp.Warning)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, times(resp.Slots))
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
	schedules.AssertExpectations(t)
	reservations.AssertExpectations(t)
}

func TestUseCase_Execute_ReservedSlotUnavailable(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return(morningRule(), nil)
	reservations.On("GetBlockingByProviderAndDate", mock.Anything, int64(3), monday).Return([]*domain.Reservation{
		{ID: 10, ProviderID: 3, StartTime: "10:00", Status: domain.StatusPending},
	}, nil)

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, s.Time != "10:00", s.Available, "slot %s", s.Time)
	}
}

func TestUseCase_Execute_CancelledReservationDoesNotBlock(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return(morningRule(), nil)
	reservations.On("GetBlockingByProviderAndDate", mock.Anything, int64(3), monday).Return([]*domain.Reservation{
		{ID: 10, ProviderID: 3, StartTime: "10:00", Status: domain.StatusCancelled},
	}, nil)

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestUseCase_Execute_NoRules(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return([]*domain.ScheduleRule{}, nil)
	reservations.On("GetBlockingByProviderAndDate", mock.Anything, int64(3), monday).Return([]*domain.Reservation{}, nil)

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
	assert.Nil(t, resp.Warning)
}

func TestUseCase_Execute_ScheduleErrorGivesWarning(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return(nil, errors.New("connection reset"))

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.ErrorIs(t, resp.Warning, ErrScheduleUnavailable)
	reservations.AssertNotCalled(t, "GetBlockingByProviderAndDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ReservationsErrorGivesWarning(t *testing.T) {
	schedules := new(MockScheduleRepository)
	reservations := new(MockReservationRepository)

	schedules.On("GetActiveByProviderAndDay", mock.Anything, int64(3), 1).Return(morningRule(), nil)
	reservations.On("GetBlockingByProviderAndDate", mock.Anything, int64(3), monday).Return(nil, errors.New("timeout"))

	resp, err := newUseCase(schedules, reservations).Execute(context.Background(), &Request{ProviderID: 3, Date: monday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.ErrorIs(t, resp.Warning, ErrReservationsUnavailable)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newUseCase(new(MockScheduleRepository), new(MockReservationRepository))

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
