package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alpenhof/shipdesk/internal/config"
	"github.com/alpenhof/shipdesk/internal/domain"
	"github.com/alpenhof/shipdesk/pkg/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchProducts returns the full shipment product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/api/shipementSelectProducts", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchClients returns catalog clients whose name matches query.
func (c *Client) SearchClients(ctx context.Context, query string) ([]domain.Client, error) {
	path := "/api/getClientByName?query=" + url.QueryEscape(query)
	var clients []domain.Client
	if err := c.get(ctx, path, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// SubmitShipment posts the finalized shipment payload.
func (c *Client) SubmitShipment(ctx context.Context, payload ShipmentPayload) error {
	const op = "submit shipment"

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/shipments", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errors.ErrNetwork{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Backend rejected shipment",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return &errors.ErrNetwork{Op: op, StatusCode: resp.StatusCode}
	}

	return nil
}

// get executes a GET against path and decodes the JSON response into dest.
func (c *Client) get(ctx context.Context, path string, dest any) error {
	op := "GET " + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errors.ErrNetwork{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &errors.ErrNetwork{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.ErrNetwork{Op: op, Err: err}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
