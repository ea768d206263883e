package submit_enrollment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
		return fmt.Errorf("%w: idempotency key must be a UUID", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Specialty) == "" ||
		strings.TrimSpace(req.LicenseNumber) == "" || strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: fullName, email, specialty and licenseNumber are required", ErrInvalidInput)
	}

	if req.ConsultationFee <= 0 {
		return fmt.Errorf("%w: consultationFee must be positive", ErrInvalidInput)
	}

	return nil
}
