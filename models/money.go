package models

import "github.com/shopspring/decimal"

func init() {
	// The remote API reads and writes amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
