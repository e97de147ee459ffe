package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionDisclaimer must accompany every converted amount shown to a user.
const ConversionDisclaimer = "Converted amount uses a fixed, approximate exchange rate; it is not a live rate."

// Money is an amount in a named currency, kept at cent precision.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney rounds amount to cents.
func NewMoney(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount).Round(2), Currency: currency}
}

// Float returns the amount as float64.
func (m Money) Float() float64 {
	return m.Amount.InexactFloat64()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}

// Converter applies a fixed linear exchange rate. The rate is a static
// approximation configured by the operator.
type Converter struct {
	From string
	To   string
	Rate decimal.Decimal
}

// NewConverter validates rate > 0.
func NewConverter(from, to string, rate float64) (Converter, error) {
	if from == "" || to == "" {
		return Converter{}, errors.New("converter currencies must be set")
	}
	r := decimal.NewFromFloat(rate)
	if !r.IsPositive() {
		return Converter{}, fmt.Errorf("converter rate must be > 0, got %v", rate)
	}
	return Converter{From: from, To: to, Rate: r}, nil
}

// Convert returns amount*rate in the target currency, rounded to cents.
func (c Converter) Convert(amount float64) Money {
	return Money{
		Amount:   decimal.NewFromFloat(amount).Mul(c.Rate).Round(2),
		Currency: c.To,
	}
}

// Tier is a coarse label for a native-currency price.
type Tier string

const (
	TierEntry    Tier = "Entry-level laptop"
	TierMidRange Tier = "Mid-range performance"
	TierHighEnd  Tier = "High-end machine"
)

// Tier thresholds in the model's native currency.
const (
	entryTierCeiling    = 800
	midRangeTierCeiling = 2000
)

// TierFor classifies a native-currency price.
func TierFor(price float64) Tier {
	switch {
	case price < entryTierCeiling:
		return TierEntry
	case price < midRangeTierCeiling:
		return TierMidRange
	default:
		return TierHighEnd
	}
}

// Estimate is the outcome of one successful submission.
type Estimate struct {
	Selection  Selection  `json:"selection"`
	Row        FeatureRow `json:"features"`
	Normalized float64    `json:"normalized"`
	Price      Money      `json:"price"`
	Converted  *Money     `json:"converted,omitempty"`
	Tier       Tier       `json:"tier"`
}
