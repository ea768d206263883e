package submit_enrollment

import (
	"context"

	submitEnrollment "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/submit_enrollment"
)

type SubmitEnrollmentUseCase interface {
	Execute(ctx context.Context, req *submitEnrollment.Request) (*submitEnrollment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
