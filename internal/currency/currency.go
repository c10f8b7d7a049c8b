// Package currency converts canonical-currency amounts for display.
// Prices are stored in USD everywhere; conversion is a pure
// formatting step and owns no state.
package currency

import "errors"

var ErrUnknownCurrency = errors.New("unknown currency code")

type rate struct {
	symbol string
	factor float64
}

var rates = map[string]rate{
	"USD": {symbol: "$", factor: 1.0},
	"EUR": {symbol: "€", factor: 0.92},
	"GBP": {symbol: "£", factor: 0.79},
	"INR": {symbol: "₹", factor: 83.10},
}

type Converter struct {
	code string
	rate rate
}

// NewConverter returns a converter for the given display currency.
func NewConverter(code string) (*Converter, error) {
	r, ok := rates[code]
	if !ok {
		return nil, ErrUnknownCurrency
	}
	return &Converter{code: code, rate: r}, nil
}

func (c *Converter) Code() string {
	return c.code
}

func (c *Converter) Symbol() string {
	return c.rate.symbol
}

// Convert maps an amount in the canonical currency to the display
// currency.
func (c *Converter) Convert(amount float64) float64 {
	return amount * c.rate.factor
}
