package payfast

import (
	"time"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// Config параметры мерчанта и адреса возврата
type Config struct {
	MerchantID  string
	MerchantKey string
	Passphrase  string
	ProcessURL  string
	ReturnURL   string
	CancelURL   string
	NotifyURL   string
	Timeout     time.Duration
}

// Payer данные плательщика. Заполняются только если у пациента есть профиль
type Payer struct {
	FirstName *string
	Email     string
}

// PaymentRequest запрос на hosted checkout
type PaymentRequest struct {
	Reference       string // m_payment_id
	Amount          types.Cents
	ItemName        string
	ItemDescription string
	ReservationID   int64  // custom_str1
	PatientID       int64  // custom_str2
	PaymentType     string // custom_str3
	Payer           *Payer
}

// Поля формы шлюза
const (
	FieldMerchantID      = "merchant_id"
	FieldMerchantKey     = "merchant_key"
	FieldReturnURL       = "return_url"
	FieldCancelURL       = "cancel_url"
	FieldNotifyURL       = "notify_url"
	FieldNameFirst       = "name_first"
	FieldEmailAddress    = "email_address"
	FieldPaymentID       = "m_payment_id"
	FieldAmount          = "amount"
	FieldItemName        = "item_name"
	FieldItemDescription = "item_description"
	FieldCustomStr1      = "custom_str1"
	FieldCustomStr2      = "custom_str2"
	FieldCustomStr3      = "custom_str3"
	FieldSignature       = "signature"
	FieldPaymentStatus   = "payment_status"
	FieldPassphrase      = "passphrase"
)
