// README: Common value objects used across modules.
package types

type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CurrencyINR is the only currency fares are quoted in.
const CurrencyINR = "INR"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func INR(amount int64) Money {
	return Money{Amount: amount, Currency: CurrencyINR}
}
