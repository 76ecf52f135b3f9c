package domain

// InvoiceStatus represents the status of a shipment invoice
type InvoiceStatus string

const (
	InvoiceStatusPending    InvoiceStatus = "pending"
	InvoiceStatusInShipment InvoiceStatus = "inShipment"
	InvoiceStatusShipped    InvoiceStatus = "shipped"
	InvoiceStatusDelivered  InvoiceStatus = "delivered"
)

// IsValid checks if the invoice status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending,
		InvoiceStatusInShipment,
		InvoiceStatusShipped,
		InvoiceStatusDelivered:
		return true
	default:
		return false
	}
}

// StatusOption pairs an invoice status with its display label.
type StatusOption struct {
	Label string        `json:"label"`
	Value InvoiceStatus `json:"value"`
}

// InvoiceStatusOptions returns the selectable statuses in display order.
func InvoiceStatusOptions() []StatusOption {
	return []StatusOption{
		{Label: "Pending", Value: InvoiceStatusPending},
		{Label: "In Shipment", Value: InvoiceStatusInShipment},
		{Label: "Shipped", Value: InvoiceStatusShipped},
		{Label: "Delivered", Value: InvoiceStatusDelivered},
	}
}
