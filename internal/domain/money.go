package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces decimales con los que se persisten los montos (columnas NUMERIC(12,2)).
const MoneyPlaces = 2

// MaxMoney mayor monto representable en NUMERIC(12,2).
var MaxMoney = decimal.RequireFromString("9999999999.99")

// ValidMoney indica si d tiene a lo sumo dos decimales y cabe en la columna.
func ValidMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces)) && d.Abs().LessThanOrEqual(MaxMoney)
}

// CheckMoney devuelve RuleInvalidPrice si el monto de field no es un valor monetario válido.
func CheckMoney(field string, d decimal.Decimal) error {
	if ValidMoney(d) {
		return nil
	}
	return &ValidationError{
		Rule:    RuleInvalidPrice,
		Message: fmt.Sprintf("%s: máximo %d decimales", field, MoneyPlaces),
		Details: map[string]string{"field": field, "value": d.String()},
	}
}
