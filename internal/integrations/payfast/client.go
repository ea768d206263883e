package payfast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client клиент hosted checkout платежного шлюза
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента. Редиректы шлюза не выполняются, их Location возвращается вызывающему
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log,
	}
}

// Passphrase нужен обработчику уведомлений для проверки подписи
func (c *Client) Passphrase() string {
	return c.cfg.Passphrase
}

// BuildForm собирает подписанную форму платежа
func (c *Client) BuildForm(req *PaymentRequest) (url.Values, error) {
	if c.cfg.MerchantID == "" || c.cfg.MerchantKey == "" {
		return nil, ErrMissingCredentials
	}
	if req.Reference == "" || req.Amount <= 0 || req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reference, amount and reservation are required", ErrInvalidRequest)
	}

	form := url.Values{}
	form.Set(FieldMerchantID, c.cfg.MerchantID)
	form.Set(FieldMerchantKey, c.cfg.MerchantKey)
	setIfNotEmpty(form, FieldReturnURL, c.cfg.ReturnURL)
	setIfNotEmpty(form, FieldCancelURL, c.cfg.CancelURL)
	setIfNotEmpty(form, FieldNotifyURL, c.cfg.NotifyURL)

	// Без профиля плательщика поля не отправляются совсем
	if req.Payer != nil {
		if req.Payer.FirstName != nil {
			setIfNotEmpty(form, FieldNameFirst, *req.Payer.FirstName)
		}
		setIfNotEmpty(form, FieldEmailAddress, req.Payer.Email)
	}

	form.Set(FieldPaymentID, req.Reference)
	form.Set(FieldAmount, req.Amount.Decimal())
	form.Set(FieldItemName, req.ItemName)
	setIfNotEmpty(form, FieldItemDescription, req.ItemDescription)
	form.Set(FieldCustomStr1, strconv.FormatInt(req.ReservationID, 10))
	if req.PatientID > 0 {
		form.Set(FieldCustomStr2, strconv.FormatInt(req.PatientID, 10))
	}
	setIfNotEmpty(form, FieldCustomStr3, req.PaymentType)

	form.Set(FieldSignature, Sign(form, c.cfg.Passphrase))
	return form, nil
}

// RequestRedirect отправляет форму в шлюз и возвращает URL, на который нужно перенаправить пациента
func (c *Client) RequestRedirect(ctx context.Context, req *PaymentRequest) (string, error) {
	form, err := c.BuildForm(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ProcessURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		location, err := resp.Location()
		if err != nil {
			return "", fmt.Errorf("%w: redirect without location: %v", ErrGatewayRejected, err)
		}
		c.log.Info("PayFast: redirect issued for m_payment_id=%s", req.Reference)
		return location.String(), nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.log.Info("PayFast: checkout accepted for m_payment_id=%s", req.Reference)
		return c.cfg.ProcessURL + "?" + form.Encode(), nil

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrGatewayRejected, resp.StatusCode, string(body))
	}
}

func setIfNotEmpty(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}
