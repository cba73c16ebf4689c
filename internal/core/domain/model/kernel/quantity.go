package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimals of the currency minor unit (EUR cents).
const MoneyPlaces = 2

// MinVolume is the smallest volume, in m³, an expedition may declare.
var MinVolume = decimal.RequireFromString("0.00001")

// RequirePositive fails unless v > 0.
func RequirePositive(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", v))
	}
	return nil
}

// RequireNonNegative fails unless v >= 0.
func RequireNonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
	}
	return nil
}

// RoundMoney rounds to the currency minor unit.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}
