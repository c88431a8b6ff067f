package booking

import (
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	hoursPerDay       = 24
	minimumBilledHrs  = 6
	hourlyTierCeiling = 12
)

// PricingStrategy defines the interface for calculating the cost of a stay.
type PricingStrategy interface {
	// Calculate returns the total cost for the given parameters.
	Calculate(params PricingParams) (decimal.Decimal, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	DailyRate     decimal.Decimal
	DurationHours int
}

// TieredPricingStrategy bills short stays by the hour and long stays by the day.
type TieredPricingStrategy struct{}

// NewTieredPricingStrategy creates a new TieredPricingStrategy.
func NewTieredPricingStrategy() *TieredPricingStrategy {
	return &TieredPricingStrategy{}
}

// Calculate validates the inputs and delegates to ComputeCost.
func (s *TieredPricingStrategy) Calculate(params PricingParams) (decimal.Decimal, error) {
	if !params.DailyRate.IsPositive() {
		return decimal.Zero, domain.NewValidationError("daily rate must be positive")
	}
	if params.DurationHours <= 0 {
		return decimal.Zero, domain.NewValidationError("duration must be positive")
	}
	return ComputeCost(params.DailyRate, params.DurationHours), nil
}

// ComputeCost prices a stay from the room's daily rate:
//   - up to 6 hours: 6 hours at the hourly rate (dailyRate/24), rounded up
//   - 6 to 12 hours: actual hours at the hourly rate, rounded up
//   - 12 to 24 hours: one daily rate
//   - over 24 hours: daily rate per started day
//
// Both inputs must be positive.
func ComputeCost(dailyRate decimal.Decimal, durationHours int) decimal.Decimal {
	switch {
	case durationHours <= minimumBilledHrs:
		return hourly(dailyRate, minimumBilledHrs)
	case durationHours <= hourlyTierCeiling:
		return hourly(dailyRate, durationHours)
	case durationHours <= hoursPerDay:
		return dailyRate
	default:
		days := (durationHours + hoursPerDay - 1) / hoursPerDay
		return dailyRate.Mul(decimal.NewFromInt(int64(days)))
	}
}

// hourly multiplies before dividing so whole results stay exact.
func hourly(dailyRate decimal.Decimal, hours int) decimal.Decimal {
	return dailyRate.
		Mul(decimal.NewFromInt(int64(hours))).
		Div(decimal.NewFromInt(hoursPerDay)).
		Ceil()
}
