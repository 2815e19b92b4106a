package domain

import "github.com/shopspring/decimal"

func init() {
	// The API serializes price as a bare JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product belongs to exactly one category. Price is a non-negative decimal
// amount; the server rejects anything else with a validation error.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int             `json:"categoryId"`
}
