package domain

// GatewayStatus is the payment_status value reported by the payment gateway
type GatewayStatus string

const (
	GatewayComplete  GatewayStatus = "COMPLETE"
	GatewayCancelled GatewayStatus = "CANCELLED"
	GatewayFailed    GatewayStatus = "FAILED"
	GatewayPending   GatewayStatus = "PENDING"
)

// PaymentOutcome is the result of processing a gateway notification
type PaymentOutcome string

const (
	OutcomeConfirmed PaymentOutcome = "confirmed"
	OutcomeCancelled PaymentOutcome = "cancelled"
	OutcomeIgnored   PaymentOutcome = "ignored"
	OutcomeNotFound  PaymentOutcome = "not_found"
	OutcomeStale     PaymentOutcome = "stale"
	OutcomeFailed    PaymentOutcome = "persistence_failed"
)

// Transition maps a gateway status to the reservation's terminal state.
// ok is false for statuses that must not change the reservation.
func (s GatewayStatus) Transition() (ReservationStatus, PaymentStatus, bool) {
	switch s {
	case GatewayComplete:
		return StatusConfirmed, PaymentPaid, true
	case GatewayCancelled, GatewayFailed:
		return StatusCancelled, PaymentFailed, true
	default:
		return "", "", false
	}
}
