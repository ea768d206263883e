package create_reservation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/provider"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	res.ID = args.Get(0).(int64) // имитируем RETURNING id
	return res, nil
}

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

type countingMetrics struct {
	mu      sync.Mutex
	created int
}

func (m *countingMetrics) RecordReservationCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2026, 10, 30, 8, 0, 0, 0, time.UTC)

func approvedProvider() *domain.Provider {
	return &domain.Provider{ID: 3, UserID: 30, FullName: "Dr. Naidoo", ConsultationFee: 50000, IsApproved: true}
}

func validRequest() *Request {
	return &Request{
		PatientID:  7,
		ProviderID: 3,
		Date:       types.MustDate("2026-11-02"),
		StartTime:  "10:00",
		Notes:      ptr.Ptr("follow-up"),
	}
}

func newUseCase(reservations ReservationRepository, providers ProviderRepository, m Metrics) *UseCase {
	uc := NewUseCase(reservations, providers, domain.DefaultBookingFee, m, logger.Nop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestUseCase_Execute_Success(t *testing.T) {
	reservations := new(MockReservationRepository)
	providers := new(MockProviderRepository)
	m := &countingMetrics{}

	providers.On("GetByID", mock.Anything, int64(3)).Return(approvedProvider(), nil)
	reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.PatientID == 7 &&
			r.ProviderID == 3 &&
			r.ConsultationFee == 50000 &&
			r.BookingFee == 1000 &&
			r.TotalAmount == 51000 &&
			r.Status == domain.StatusPending &&
			r.PaymentStatus == domain.PaymentPending &&
			r.CreatedAt.Equal(testNow)
	})).Return(int64(42), nil)

	resp, err := newUseCase(reservations, providers, m).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.Reservation.ID)
	assert.Equal(t, types.Cents(51000), resp.Reservation.TotalAmount)
	assert.Equal(t, 1, m.created)
	reservations.AssertExpectations(t)
	providers.AssertExpectations(t)
}

func TestUseCase_Execute_NormalizesStartTime(t *testing.T) {
	reservations := new(MockReservationRepository)
	providers := new(MockProviderRepository)

	providers.On("GetByID", mock.Anything, int64(3)).Return(approvedProvider(), nil)
	reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.StartTime == types.TimeString("09:30")
	})).Return(int64(43), nil)

	req := validRequest()
	req.StartTime = "09:30:00"

	resp, err := newUseCase(reservations, providers, &countingMetrics{}).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), resp.Reservation.StartTime)
	reservations.AssertExpectations(t)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "no patient", modify: func(r *Request) { r.PatientID = 0 }},
		{name: "no provider", modify: func(r *Request) { r.ProviderID = -1 }},
		{name: "no date", modify: func(r *Request) { r.Date = types.Date{} }},
		{name: "no time", modify: func(r *Request) { r.StartTime = "" }},
		{name: "bad time", modify: func(r *Request) { r.StartTime = "10:61" }},
		{name: "off grid", modify: func(r *Request) { r.StartTime = "10:15" }},
		{name: "past midnight", modify: func(r *Request) { r.StartTime = "24:00" }},
		{name: "long notes", modify: func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservations := new(MockReservationRepository)
			providers := new(MockProviderRepository)

			req := validRequest()
			tt.modify(req)

			_, err := newUseCase(reservations, providers, &countingMetrics{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			providers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_ProviderErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		providers := new(MockProviderRepository)
		providers.On("GetByID", mock.Anything, int64(3)).Return(nil, providerRepo.ErrProviderNotFound)

		_, err := newUseCase(new(MockReservationRepository), providers, &countingMetrics{}).Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("not approved", func(t *testing.T) {
		p := approvedProvider()
		p.IsApproved = false
		providers := new(MockProviderRepository)
		providers.On("GetByID", mock.Anything, int64(3)).Return(p, nil)

		_, err := newUseCase(new(MockReservationRepository), providers, &countingMetrics{}).Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProviderNotApproved)
	})

	t.Run("db failure", func(t *testing.T) {
		providers := new(MockProviderRepository)
		providers.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("connection refused"))

		_, err := newUseCase(new(MockReservationRepository), providers, &countingMetrics{}).Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_InsertFailure(t *testing.T) {
	reservations := new(MockReservationRepository)
	providers := new(MockProviderRepository)
	m := &countingMetrics{}

	providers.On("GetByID", mock.Anything, int64(3)).Return(approvedProvider(), nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))

	_, err := newUseCase(reservations, providers, m).Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, m.created)
}

// Одновременные записи на одно время обе проходят: проверки занятости при вставке нет
func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	db := storagetest.NewSchemaDB(t)
	providers := providerRepo.NewRepository(db)
	reservations := reservationRepo.NewRepository(db)
	ctx := context.Background()

	p := approvedProvider()
	p.ID = 0
	p.CreatedAt, p.UpdatedAt = testNow, testNow
	created, err := providers.Create(ctx, p)
	require.NoError(t, err)

	uc := newUseCase(reservations, providers, &countingMetrics{})

	const workers = 2
	ids := make([]int64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.PatientID = int64(100 + i)
			req.ProviderID = created.ID

			resp, err := uc.Execute(ctx, req)
			errs[i] = err
			if err == nil {
				ids[i] = resp.Reservation.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.NotZero(t, ids[i])
	}
	assert.NotEqual(t, ids[0], ids[1])

	blocking, err := reservations.GetBlockingByProviderAndDate(ctx, created.ID, types.MustDate("2026-11-02"))
	require.NoError(t, err)
	assert.Len(t, blocking, 2)
}
