package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alpenhof/shipdesk/internal/config"
	"github.com/alpenhof/shipdesk/internal/domain"
	pkgerrors "github.com/alpenhof/shipdesk/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.BackendConfig{BaseURL: baseURL}, zap.NewNop())
}

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/shipementSelectProducts", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Name: "Crate", Type: "packaging", Price: "€120.00"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Crate", products[0].Name)
	assert.Equal(t, "€120.00", products[0].Price)
}

func TestFetchProductsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProducts(context.Background())

	require.Error(t, err)
	var netErr *pkgerrors.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
}

func TestFetchProductsConnectionRefused(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.FetchProducts(context.Background())

	var netErr *pkgerrors.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, netErr.Unwrap())
}

func TestSearchClientsEscapesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/getClientByName", r.URL.Path)
		assert.Equal(t, "Müller & Co", r.URL.Query().Get("query"))

		json.NewEncoder(w).Encode([]domain.Client{
			{ID: 7, CompanyName: "Müller & Co AG", City: "Zürich"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	clients, err := client.SearchClients(context.Background(), "Müller & Co")

	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Müller & Co AG", clients[0].CompanyName)
}

func TestSubmitShipment(t *testing.T) {
	var received ShipmentPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/shipments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payload := ShipmentPayload{
		Client: &domain.Client{ID: 7, CompanyName: "Acme AG"},
		Products: []domain.LineItem{
			{Name: "Crate", Price: 360, Volume: 3, UnitPrice: 120},
		},
		Invoice: InvoicePayload{
			InvoiceNumber: "2025-06-12345",
			Subtotal:      360,
			TaxRate:       7.7,
			TaxAmount:     27.72,
			Total:         387.72,
			Status:        domain.InvoiceStatusPending,
		},
	}

	require.NoError(t, client.SubmitShipment(context.Background(), payload))
	assert.Equal(t, "2025-06-12345", received.Invoice.InvoiceNumber)
	require.Len(t, received.Products, 1)
	assert.Equal(t, 3, received.Products[0].Volume)
}

func TestSubmitShipmentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"missing client"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.SubmitShipment(context.Background(), ShipmentPayload{})

	var netErr *pkgerrors.ErrNetwork
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusUnprocessableEntity, netErr.StatusCode)
}

func TestInvoicePayloadWireFormat(t *testing.T) {
	raw, err := json.Marshal(InvoicePayload{InvoiceNumber: "2025-06-12345"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{
		"invoice_number", "date", "due_date", "subtotal",
		"tax_rate", "tax_amount", "total", "status", "notes",
	} {
		assert.Contains(t, fields, key)
	}
}
