package shipment

import (
	"github.com/alpenhof/shipdesk/internal/domain"
	"github.com/alpenhof/shipdesk/internal/pricing"
)

// Result is the structured outcome of a store operation. Failures are values,
// not errors: nothing the store does escapes to crash the caller.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Snapshot is a consistent copy of the draft for read-only consumers.
type Snapshot struct {
	DraftID         string            `json:"draftId"`
	SelectedProduct *domain.Product   `json:"selectedProduct"`
	EditablePrice   *float64          `json:"editablePrice"`
	EditableVolume  int               `json:"editableVolume"`
	TotalPrice      float64           `json:"totalPrice"`
	AddedProducts   []domain.LineItem `json:"addedProducts"`
	AllProducts     []domain.Product  `json:"allProducts"`
	Loading         bool              `json:"loading"`
	SelectedClient  *domain.Client    `json:"selectedClient"`
	AllClients      []domain.Client   `json:"allClients"`
	LoadingClient   bool              `json:"loadingClient"`
	Invoice         domain.Invoice    `json:"invoice"`
	Subtotal        float64           `json:"subtotal"`
	TaxAmount       float64           `json:"taxAmount"`
	TotalWithTax    float64           `json:"totalWithTax"`
}

// Snapshot returns a point-in-time copy of the draft with derived totals
// computed from the committed line items.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, len(s.addedProducts))
	copy(items, s.addedProducts)
	products := make([]domain.Product, len(s.allProducts))
	copy(products, s.allProducts)
	clients := make([]domain.Client, len(s.allClients))
	copy(clients, s.allClients)

	subtotal := pricing.Subtotal(items)
	taxAmount := pricing.TaxAmount(subtotal, s.invoice.TaxRate)

	return Snapshot{
		DraftID:         s.draftID,
		SelectedProduct: s.selectedProduct,
		EditablePrice:   s.editablePrice,
		EditableVolume:  s.editableVolume,
		TotalPrice:      s.totalPrice,
		AddedProducts:   items,
		AllProducts:     products,
		Loading:         s.loading,
		SelectedClient:  s.selectedClient,
		AllClients:      clients,
		LoadingClient:   s.loadingClient,
		Invoice:         s.invoice,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		TotalWithTax:    pricing.GrandTotal(subtotal, taxAmount),
	}
}
