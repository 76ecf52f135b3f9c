package domain

import "time"

// Product is a catalog entry fetched from the backend. Price is the display
// price as returned by the API and may carry a currency symbol.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Client is a customer record fetched from the backend.
type Client struct {
	ID            int64  `json:"id"`
	CompanyName   string `json:"companyName"`
	VATNumber     string `json:"vatNumber"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	ContactPerson string `json:"contactPerson"`
}

// LineItem is a product committed to the shipment. Price is the line total,
// Volume the quantity, UnitPrice the per-unit price at commit time.
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Volume      int     `json:"volume"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Invoice carries the billing fields of the in-progress shipment. Exactly one
// invoice exists per draft; it is regenerated wholesale on reset.
type Invoice struct {
	Number  string        `json:"invoiceNumber"`
	Date    time.Time     `json:"date"`
	DueDate time.Time     `json:"dueDate"`
	TaxRate float64       `json:"taxRate"`
	Status  InvoiceStatus `json:"status"`
	Notes   string        `json:"notes"`
}
