package shipment

import (
	"context"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alpenhof/shipdesk/internal/backend"
	"github.com/alpenhof/shipdesk/internal/domain"
	"github.com/alpenhof/shipdesk/internal/invoice"
	"github.com/alpenhof/shipdesk/internal/kv"
	"github.com/alpenhof/shipdesk/internal/pricing"
)

// Storage keys, one per persisted field of the draft.
const (
	keySelectedProduct = "shipment-selectedProduct"
	keyEditablePrice   = "shipment-editablePrice"
	keyEditableVolume  = "shipment-editableVolume"
	keyTotalPrice      = "shipment-totalPrice"
	keyAddedProducts   = "shipment-addedProducts"
	keySelectedClient  = "shipment-selectedClient"
	keyInvoice         = "shipment-invoice"
	keyDraftID         = "shipment-draftID"
)

var persistedKeys = []string{
	keySelectedProduct,
	keyEditablePrice,
	keyEditableVolume,
	keyTotalPrice,
	keyAddedProducts,
	keySelectedClient,
	keyInvoice,
	keyDraftID,
}

// Backend is the remote API the store reads the catalog from and submits
// finalized shipments to.
type Backend interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	SearchClients(ctx context.Context, query string) ([]domain.Client, error)
	SubmitShipment(ctx context.Context, payload backend.ShipmentPayload) error
}

// Store owns the in-progress shipment: the candidate product and its editable
// price/volume, the committed line items, the selected client and the invoice.
// It is the single mutation point for all of them; derived totals are
// recomputed from committed state on every read, never cached.
//
// Every field except the catalog lists and loading flags is written back to
// durable storage after each mutation and loaded again on construction, so a
// draft survives restarts until NewShipment erases it.
type Store struct {
	mu sync.Mutex

	selectedProduct *domain.Product
	editablePrice   *float64
	editableVolume  int
	totalPrice      float64
	addedProducts   []domain.LineItem
	selectedClient  *domain.Client
	invoice         domain.Invoice
	draftID         string

	allProducts   []domain.Product
	loading       bool
	allClients    []domain.Client
	loadingClient bool

	defaultTaxRate float64

	storage kv.Store
	api     Backend
	logger  *zap.Logger
}

// New builds a store over the given collaborators, rehydrating any persisted
// draft and falling back to a fresh one (empty order, new invoice) otherwise.
func New(storage kv.Store, api Backend, logger *zap.Logger, defaultTaxRate float64) *Store {
	s := &Store{
		editableVolume: 1,
		defaultTaxRate: defaultTaxRate,
		storage:        storage,
		api:            api,
		logger:         logger,
	}

	s.load(keySelectedProduct, &s.selectedProduct)
	s.load(keyEditablePrice, &s.editablePrice)
	s.load(keyEditableVolume, &s.editableVolume)
	s.load(keyTotalPrice, &s.totalPrice)
	s.load(keyAddedProducts, &s.addedProducts)
	s.load(keySelectedClient, &s.selectedClient)

	if found := s.load(keyInvoice, &s.invoice); !found {
		s.invoice = s.freshInvoice(time.Now())
		s.persist(keyInvoice, s.invoice)
	}
	if found := s.load(keyDraftID, &s.draftID); !found {
		s.draftID = uuid.NewString()
		s.persist(keyDraftID, s.draftID)
	}

	return s
}

// load reads a persisted field into dest, reporting whether it was present.
// Storage failures degrade to the in-memory default.
func (s *Store) load(key string, dest any) bool {
	found, err := s.storage.Get(key, dest)
	if err != nil {
		s.logger.Warn("Failed to load persisted field", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

// persist writes a field back to durable storage. Writes are fire-and-forget:
// failures are logged, never propagated.
func (s *Store) persist(key string, value any) {
	if err := s.storage.Set(key, value); err != nil {
		s.logger.Warn("Failed to persist field", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) freshInvoice(now time.Time) domain.Invoice {
	return domain.Invoice{
		Number:  invoice.Number(now),
		Date:    now,
		DueDate: now.AddDate(0, 0, 1),
		TaxRate: s.defaultTaxRate,
		Status:  domain.InvoiceStatusPending,
		Notes:   "",
	}
}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// parseDisplayPrice strips currency symbols from a display price and parses
// the remainder. A malformed price yields nil rather than an error; selecting
// such a product is allowed, committing it is not.
func parseDisplayPrice(display string) *float64 {
	stripped := nonNumeric.ReplaceAllString(display, "")
	price, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return nil
	}
	return &price
}

// SetSelectedProduct sets or clears the candidate product. A non-nil product
// resets the volume to 1 and derives the editable unit price from its display
// price; nil clears the price and zeroes the line total.
func (s *Store) SetSelectedProduct(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedProduct = product
	if product != nil && product.Price != "" {
		s.editablePrice = parseDisplayPrice(product.Price)
		s.editableVolume = 1
		s.updateTotalPriceLocked()
	} else {
		s.editablePrice = nil
		s.totalPrice = 0
	}

	s.persistCandidateLocked()
}

// SetEditablePrice overrides the candidate's unit price and recomputes the
// line total.
func (s *Store) SetEditablePrice(price *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editablePrice = price
	s.updateTotalPriceLocked()
	s.persistCandidateLocked()
}

// UpdateTotalPrice recomputes the editable line total from unit price and
// volume.
func (s *Store) UpdateTotalPrice() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateTotalPriceLocked()
	s.persist(keyTotalPrice, s.totalPrice)
}

func (s *Store) updateTotalPriceLocked() {
	if s.editablePrice != nil && s.editableVolume > 0 {
		s.totalPrice = *s.editablePrice * float64(s.editableVolume)
	} else {
		s.totalPrice = 0
	}
}

// IncrementVolume raises the candidate quantity by one and recomputes the
// line total.
func (s *Store) IncrementVolume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editableVolume++
	s.updateTotalPriceLocked()
	s.persist(keyEditableVolume, s.editableVolume)
	s.persist(keyTotalPrice, s.totalPrice)
}

// DecrementVolume lowers the candidate quantity by one, never below 1.
func (s *Store) DecrementVolume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editableVolume <= 1 {
		return
	}
	s.editableVolume--
	s.updateTotalPriceLocked()
	s.persist(keyEditableVolume, s.editableVolume)
	s.persist(keyTotalPrice, s.totalPrice)
}

// AddProduct commits the candidate to the shipment as a line item. The commit
// is rejected, without touching any state, unless a candidate is selected with
// a non-negative unit price and a positive volume.
func (s *Store) AddProduct() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedProduct == nil ||
		s.editablePrice == nil ||
		*s.editablePrice < 0 ||
		s.editableVolume <= 0 {
		return Result{Success: false, Message: "Please enter valid price and volume values."}
	}

	s.addedProducts = append(s.addedProducts, domain.LineItem{
		Name:        s.selectedProduct.Name,
		Description: s.selectedProduct.Description,
		Price:       s.totalPrice,
		Volume:      s.editableVolume,
		UnitPrice:   *s.editablePrice,
	})

	s.selectedProduct = nil
	s.editablePrice = nil
	s.editableVolume = 1
	s.totalPrice = 0

	s.persist(keyAddedProducts, s.addedProducts)
	s.persistCandidateLocked()

	return Result{Success: true}
}

// RemoveProduct removes the line item at idx. Out-of-range indices are a no-op.
func (s *Store) RemoveProduct(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.addedProducts) {
		return
	}
	s.addedProducts = append(s.addedProducts[:idx], s.addedProducts[idx+1:]...)
	s.persist(keyAddedProducts, s.addedProducts)
}

// SetSelectedClient sets or clears the shipment's client.
func (s *Store) SetSelectedClient(client *domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedClient = client
	s.persist(keySelectedClient, s.selectedClient)
}

// SetInvoiceStatus updates the invoice status. Unknown statuses are rejected.
func (s *Store) SetInvoiceStatus(status domain.InvoiceStatus) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.IsValid() {
		return Result{Success: false, Message: "Unknown invoice status: " + string(status)}
	}
	s.invoice.Status = status
	s.persist(keyInvoice, s.invoice)
	return Result{Success: true}
}

// SetInvoiceNotes replaces the invoice's free-text notes.
func (s *Store) SetInvoiceNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.Notes = notes
	s.persist(keyInvoice, s.invoice)
}

// SetTaxRate updates the invoice tax rate percentage.
func (s *Store) SetTaxRate(ratePercent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.TaxRate = ratePercent
	s.persist(keyInvoice, s.invoice)
}

// FetchProducts refreshes the product catalog from the backend. The loading
// flag is held true for the duration of the call and cleared on every path;
// on failure the previous list is kept and the error is logged, not returned.
func (s *Store) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	products, err := s.api.FetchProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Error("Error fetching products", zap.Error(err))
		return
	}
	s.allProducts = products
}

// SearchClients refreshes the client list from the backend under the same
// contract as FetchProducts. Overlapping searches are last-write-wins.
func (s *Store) SearchClients(ctx context.Context, query string) {
	s.mu.Lock()
	s.loadingClient = true
	s.mu.Unlock()

	clients, err := s.api.SearchClients(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingClient = false
	if err != nil {
		s.logger.Error("Error fetching clients", zap.Error(err))
		return
	}
	s.allClients = clients
}

// TotalAmount returns the pre-tax subtotal of the committed line items.
func (s *Store) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Subtotal(s.addedProducts)
}

// TotalWithTax returns the grand total including tax.
func (s *Store) TotalWithTax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalWithTaxLocked()
}

func (s *Store) totalWithTaxLocked() float64 {
	subtotal := pricing.Subtotal(s.addedProducts)
	taxAmount := pricing.TaxAmount(subtotal, s.invoice.TaxRate)
	return pricing.GrandTotal(subtotal, taxAmount)
}

// Payload serializes the draft into the wire shape posted on save.
func (s *Store) Payload() backend.ShipmentPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payloadLocked()
}

func (s *Store) payloadLocked() backend.ShipmentPayload {
	subtotal := pricing.Subtotal(s.addedProducts)
	taxAmount := pricing.TaxAmount(subtotal, s.invoice.TaxRate)

	products := make([]domain.LineItem, len(s.addedProducts))
	copy(products, s.addedProducts)

	return backend.ShipmentPayload{
		Client:   s.selectedClient,
		Products: products,
		Invoice: backend.InvoicePayload{
			InvoiceNumber: s.invoice.Number,
			Date:          s.invoice.Date,
			DueDate:       s.invoice.DueDate,
			Subtotal:      subtotal,
			TaxRate:       s.invoice.TaxRate,
			TaxAmount:     taxAmount,
			Total:         pricing.GrandTotal(subtotal, taxAmount),
			Status:        s.invoice.Status,
			Notes:         s.invoice.Notes,
		},
	}
}

// SaveShipment submits the draft to the backend. The draft itself is left
// untouched on both outcomes, so a failed save can be edited and retried.
func (s *Store) SaveShipment(ctx context.Context) Result {
	s.mu.Lock()
	payload := s.payloadLocked()
	draftID := s.draftID
	s.mu.Unlock()

	if err := s.api.SubmitShipment(ctx, payload); err != nil {
		s.logger.Error("Error saving shipment",
			zap.String("draft_id", draftID),
			zap.Error(err),
		)
		return Result{Success: false, Message: "Failed to save shipment."}
	}

	s.logger.Info("Shipment saved",
		zap.String("draft_id", draftID),
		zap.String("invoice_number", payload.Invoice.InvoiceNumber),
		zap.Float64("total", payload.Invoice.Total),
	)
	return Result{Success: true, Message: "Shipment saved successfully!"}
}

// ResetState clears the whole draft: candidate fields, committed line items,
// client, and regenerates the invoice and draft id.
func (s *Store) ResetState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetStateLocked()
}

func (s *Store) resetStateLocked() {
	s.selectedProduct = nil
	s.editablePrice = nil
	s.editableVolume = 1
	s.totalPrice = 0
	s.addedProducts = nil
	s.selectedClient = nil
	s.invoice = s.freshInvoice(time.Now())
	s.draftID = uuid.NewString()

	s.persistCandidateLocked()
	s.persist(keyAddedProducts, s.addedProducts)
	s.persist(keySelectedClient, s.selectedClient)
	s.persist(keyInvoice, s.invoice)
	s.persist(keyDraftID, s.draftID)
}

// NewShipment resets the draft and erases every persisted field from durable
// storage.
func (s *Store) NewShipment() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetStateLocked()
	for _, key := range persistedKeys {
		if err := s.storage.Delete(key); err != nil {
			s.logger.Warn("Failed to clear persisted field", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Store) persistCandidateLocked() {
	s.persist(keySelectedProduct, s.selectedProduct)
	s.persist(keyEditablePrice, s.editablePrice)
	s.persist(keyEditableVolume, s.editableVolume)
	s.persist(keyTotalPrice, s.totalPrice)
}
