// Package pricing holds the pure total computations for a shipment. All
// functions are deterministic and safe to call after every mutation; derived
// amounts are never cached anywhere, they are recomputed from these.
package pricing

import "github.com/alpenhof/shipdesk/internal/domain"

// Subtotal returns the sum of the committed line totals. Zero for an empty list.
func Subtotal(items []domain.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// TaxAmount returns the tax owed on subtotal at ratePercent (e.g. 7.7 for 7.7%).
func TaxAmount(subtotal, ratePercent float64) float64 {
	return subtotal * ratePercent / 100
}

// GrandTotal returns the total including tax.
func GrandTotal(subtotal, taxAmount float64) float64 {
	return subtotal + taxAmount
}
