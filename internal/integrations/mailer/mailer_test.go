package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func confirmation() BookingConfirmation {
	return BookingConfirmation{
		To:            "thandi@clinic.test",
		PatientName:   "Thandi",
		ProviderName:  "Dr. Naidoo",
		ReservationID: 42,
		Date:          types.MustDate("2026-11-02"),
		StartTime:     types.MustTimeString("09:00"),
		EndTime:       types.MustTimeString("09:30"),
		Total:         51000,
		Currency:      "ZAR",
	}
}

func TestMailer_SendBookingConfirmation(t *testing.T) {
	dialer := &fakeDialer{}
	m := NewWithDialer(dialer, "noreply@clinic.test")

	require.NoError(t, m.SendBookingConfirmation(confirmation()))
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"thandi@clinic.test"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Appointment #42 confirmed"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Dr. Naidoo")
	assert.Contains(t, buf.String(), "510.00")
}

func TestMailer_SendBookingConfirmation_NoRecipient(t *testing.T) {
	dialer := &fakeDialer{}
	m := NewWithDialer(dialer, "noreply@clinic.test")

	c := confirmation()
	c.To = ""

	assert.ErrorIs(t, m.SendBookingConfirmation(c), ErrNoRecipient)
	assert.Empty(t, dialer.sent)
}

func TestMailer_SendBookingConfirmation_DialError(t *testing.T) {
	m := NewWithDialer(&fakeDialer{err: errors.New("connection refused")}, "noreply@clinic.test")

	assert.ErrorIs(t, m.SendBookingConfirmation(confirmation()), ErrSend)
}
