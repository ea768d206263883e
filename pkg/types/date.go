package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate возвращается при некорректном формате даты
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата без времени (UTC полночь)
type Date struct {
	time.Time
}

// NewDate отбрасывает время и зону
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDateFromString парсит "YYYY-MM-DD"
func NewDateFromString(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

func MustDate(s string) Date {
	d, err := NewDateFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Weekday возвращает день недели в нумерации 1=понедельник..7=воскресенье
func (d Date) Weekday() int {
	wd := int(d.Time.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Equal сравнивает только календарные даты
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

// Value хранит дату строкой, postgres приводит её к DATE
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
