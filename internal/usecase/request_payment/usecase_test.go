package request_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/payfast"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SetPaymentReference(ctx context.Context, id int64, reference string, now time.Time) error {
	args := m.Called(ctx, id, reference, now)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) RequestRedirect(ctx context.Context, req *payfast.PaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordPaymentRedirect(result string) {
	m.Called(result)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2026, 10, 30, 8, 0, 0, 0, time.UTC)

const testReference = "7f1d3c2a-0000-4000-8000-000000000001"

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              42,
		PatientID:       7,
		ProviderID:      3,
		Date:            types.MustDate("2026-11-02"),
		StartTime:       "10:00",
		ConsultationFee: 50000,
		BookingFee:      1000,
		TotalAmount:     51000,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
	}
}

type deps struct {
	reservations *MockReservationRepository
	users        *MockUserRepository
	gateway      *MockGateway
	metrics      *MockMetrics
}

func newDeps() deps {
	return deps{
		reservations: new(MockReservationRepository),
		users:        new(MockUserRepository),
		gateway:      new(MockGateway),
		metrics:      new(MockMetrics),
	}
}

func (d deps) useCase() *UseCase {
	uc := NewUseCase(d.reservations, d.users, d.gateway, d.metrics, logger.Nop())
	uc.newReference = func() string { return testReference }
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestUseCase_Execute_Success(t *testing.T) {
	d := newDeps()

	d.reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
	d.users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Email: "thandi@clinic.test", FullName: ptr.Ptr("Thandi Mokoena")}, nil)
	d.reservations.On("SetPaymentReference", mock.Anything, int64(42), testReference, testNow).Return(nil)
	d.gateway.On("RequestRedirect", mock.Anything, mock.MatchedBy(func(req *payfast.PaymentRequest) bool {
		return req.Reference == testReference &&
			req.Amount == types.Cents(51000) &&
			req.ReservationID == 42 &&
			req.PatientID == 7 &&
			req.PaymentType == domain.PaymentTypeBooking &&
			req.Payer != nil &&
			*req.Payer.FirstName == "Thandi" &&
			req.Payer.Email == "thandi@clinic.test"
	})).Return("https://sandbox.payfast.test/eng/process?custom_str1=42", nil)
	d.metrics.On("RecordPaymentRedirect", resultIssued).Return()

	resp, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.payfast.test/eng/process?custom_str1=42", resp.RedirectURL)
	assert.Equal(t, testReference, resp.Reference)
	assert.Equal(t, types.Cents(51000), resp.Amount)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	d.reservations.AssertExpectations(t)
	d.gateway.AssertExpectations(t)
	d.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_NoProfileOmitsPayer(t *testing.T) {
	d := newDeps()

	d.reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
	d.users.On("GetByID", mock.Anything, int64(7)).Return(nil, userRepo.ErrUserNotFound)
	d.reservations.On("SetPaymentReference", mock.Anything, int64(42), testReference, testNow).Return(nil)
	d.gateway.On("RequestRedirect", mock.Anything, mock.MatchedBy(func(req *payfast.PaymentRequest) bool {
		return req.Payer == nil
	})).Return("https://sandbox.payfast.test/eng/process", nil)
	d.metrics.On("RecordPaymentRedirect", resultIssued).Return()

	_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
	require.NoError(t, err)
	d.gateway.AssertExpectations(t)
}

func TestUseCase_Execute_GatewayFailureKeepsPending(t *testing.T) {
	d := newDeps()

	d.reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
	d.users.On("GetByID", mock.Anything, int64(7)).Return(nil, userRepo.ErrUserNotFound)
	d.reservations.On("SetPaymentReference", mock.Anything, int64(42), testReference, testNow).Return(nil)
	d.gateway.On("RequestRedirect", mock.Anything, mock.Anything).Return("", payfast.ErrMissingCredentials)
	d.metrics.On("RecordPaymentRedirect", resultFailed).Return()

	_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
	assert.ErrorIs(t, err, ErrGateway)
	d.gateway.AssertNumberOfCalls(t, "RequestRedirect", 1)
	d.metrics.AssertExpectations(t)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		d := newDeps()
		d.reservations.On("GetByID", mock.Anything, int64(42)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("another patient", func(t *testing.T) {
		d := newDeps()
		d.reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)

		_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 8})
		assert.ErrorIs(t, err, ErrForbidden)
		d.gateway.AssertNotCalled(t, "RequestRedirect", mock.Anything, mock.Anything)
	})

	t.Run("already confirmed", func(t *testing.T) {
		d := newDeps()
		res := pendingReservation()
		res.Status = domain.StatusConfirmed
		res.PaymentStatus = domain.PaymentPaid
		d.reservations.On("GetByID", mock.Anything, int64(42)).Return(res, nil)

		_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
		assert.ErrorIs(t, err, ErrNotAwaitingPayment)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := newDeps().useCase().Execute(context.Background(), &Request{ReservationID: 0, PatientID: 7})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("profile lookup failure", func(t *testing.T) {
		d := newDeps()
		d.reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
		d.users.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("connection reset"))

		_, err := d.useCase().Execute(context.Background(), &Request{ReservationID: 42, PatientID: 7})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestFirstName(t *testing.T) {
	assert.Nil(t, firstName(nil))
	assert.Nil(t, firstName(ptr.Ptr("   ")))
	assert.Equal(t, "Thandi", *firstName(ptr.Ptr("Thandi")))
	assert.Equal(t, "Thandi", *firstName(ptr.Ptr(" Thandi  Mokoena ")))
}
