package services

import (
	"errors"

	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Rates are the tariff inputs of the price estimate. They come from configuration.
type Rates struct {
	PerKm      decimal.Decimal
	PerKg      decimal.Decimal
	PerM3      decimal.Decimal
	Commission decimal.Decimal
}

// Validate requires every rate to be non-negative.
func (r Rates) Validate() error {
	return errors.Join(
		kernel.RequireNonNegative("rate per km", r.PerKm),
		kernel.RequireNonNegative("rate per kg", r.PerKg),
		kernel.RequireNonNegative("rate per m3", r.PerM3),
		kernel.RequireNonNegative("commission rate", r.Commission),
	)
}

// Quote is a listed price split into the carrier's base and the platform commission.
// Total = Base + Commission; every part is rounded to the currency minor unit.
type Quote struct {
	Base       decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

// PricingCalculator turns shipment magnitudes into listed prices.
//
// The base price is the most expensive of three tariffs, so that light but bulky
// or short but heavy loads are not undercharged:
//
//	base       = max(distance·PerKm, weight·PerKg, volume·PerM3)
//	commission = base·Commission
//	total      = base + commission
type PricingCalculator struct {
	rates Rates
}

func NewPricingCalculator(rates Rates) (PricingCalculator, error) {
	if err := rates.Validate(); err != nil {
		return PricingCalculator{}, err
	}
	return PricingCalculator{rates: rates}, nil
}

func (p PricingCalculator) Rates() Rates {
	return p.rates
}

// Estimate quotes a shipment with the configured rates.
func (p PricingCalculator) Estimate(weight, volume, distance decimal.Decimal) (Quote, error) {
	return EstimatePrice(weight, volume, distance,
		p.rates.PerKm, p.rates.PerKg, p.rates.PerM3, p.rates.Commission)
}

// EstimatePrice is the pure form of PricingCalculator.Estimate.
// Weight and volume must be positive, everything else non-negative.
func EstimatePrice(
	weight, volume, distance decimal.Decimal,
	ratePerKm, ratePerKg, ratePerM3, commissionRate decimal.Decimal,
) (Quote, error) {
	if err := errors.Join(
		kernel.RequirePositive("weight", weight),
		kernel.RequirePositive("volume", volume),
		kernel.RequireNonNegative("distance", distance),
		Rates{PerKm: ratePerKm, PerKg: ratePerKg, PerM3: ratePerM3, Commission: commissionRate}.Validate(),
	); err != nil {
		return Quote{}, err
	}

	base := decimal.Max(
		distance.Mul(ratePerKm),
		weight.Mul(ratePerKg),
		volume.Mul(ratePerM3),
	)
	commission := base.Mul(commissionRate)

	return Quote{
		Base:       kernel.RoundMoney(base),
		Commission: kernel.RoundMoney(commission),
		Total:      kernel.RoundMoney(base.Add(commission)),
	}, nil
}

// BookingPrice is what a sender pays for weight kg on a course priced per kg.
func BookingPrice(weight, pricePerKg decimal.Decimal) (decimal.Decimal, error) {
	if err := errors.Join(
		kernel.RequirePositive("weight", weight),
		kernel.RequireNonNegative("price per kg", pricePerKg),
	); err != nil {
		return decimal.Zero, err
	}
	return kernel.RoundMoney(weight.Mul(pricePerKg)), nil
}
