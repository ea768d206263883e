package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

var (
	// ErrNoRecipient возвращается, если у пациента нет email
	ErrNoRecipient = errors.New("mailer: recipient is empty")

	// ErrSend возвращается при ошибке SMTP
	ErrSend = errors.New("mailer: failed to send message")
)

// Dialer отправляет готовые письма (gomail.Dialer)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config SMTP параметры
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// BookingConfirmation данные письма о подтвержденной записи
type BookingConfirmation struct {
	To            string
	PatientName   string
	ProviderName  string
	ReservationID int64
	Date          types.Date
	StartTime     types.TimeString
	EndTime       types.TimeString
	Total         types.Cents
	Currency      string
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Hello {{.PatientName}},</p>
<p>Your appointment #{{.ReservationID}} with {{.ProviderName}} is confirmed.</p>
<p>{{.Date}} from {{.StartTime}} to {{.EndTime}}. Paid: {{.Amount}} {{.Currency}}.</p>`))

// Mailer отправляет транзакционные письма
type Mailer struct {
	dialer Dialer
	from   string
}

// New создает Mailer поверх SMTP
func New(cfg Config) *Mailer {
	return NewWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func NewWithDialer(dialer Dialer, from string) *Mailer {
	return &Mailer{dialer: dialer, from: from}
}

// SendBookingConfirmation отправляет письмо о подтверждении записи
func (m *Mailer) SendBookingConfirmation(c BookingConfirmation) error {
	if c.To == "" {
		return ErrNoRecipient
	}

	var body bytes.Buffer
	err := confirmationTemplate.Execute(&body, struct {
		BookingConfirmation
		Amount string
	}{c, c.Total.Decimal()})
	if err != nil {
		return fmt.Errorf("%w: render template: %v", ErrSend, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", c.To)
	msg.SetHeader("Subject", fmt.Sprintf("Appointment #%d confirmed", c.ReservationID))
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// Nop ничего не отправляет (mail.enabled = false)
type Nop struct{}

func (Nop) SendBookingConfirmation(BookingConfirmation) error { return nil }
