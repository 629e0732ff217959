// Package dto defines the request and response shapes of the HTTP API and
// the explicit mapping functions between them and the models.
package dto

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals are JSON numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
