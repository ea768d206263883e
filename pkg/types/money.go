package types

import "fmt"

// Cents денежная сумма в минимальных единицах валюты
type Cents int64

// Decimal форматирует сумму с двумя знаками после точки: 51000 -> "510.00"
func (c Cents) Decimal() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
