package backend

import (
	"time"

	"github.com/alpenhof/shipdesk/internal/domain"
)

// ShipmentPayload is the wire shape posted to /api/shipments.
type ShipmentPayload struct {
	Client   *domain.Client    `json:"client"`
	Products []domain.LineItem `json:"products"`
	Invoice  InvoicePayload    `json:"invoice"`
}

// InvoicePayload carries the derived invoice fields. Field names are
// snake_case at the wire boundary regardless of internal naming.
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoice_number"`
	Date          time.Time            `json:"date"`
	DueDate       time.Time            `json:"due_date"`
	Subtotal      float64              `json:"subtotal"`
	TaxRate       float64              `json:"tax_rate"`
	TaxAmount     float64              `json:"tax_amount"`
	Total         float64              `json:"total"`
	Status        domain.InvoiceStatus `json:"status"`
	Notes         string               `json:"notes"`
}
