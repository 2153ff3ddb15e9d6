// Package apiclient talks to the remote inventory REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"inventory-admin/models"
)

// Endpoint paths, relative to the API base URL
const (
	PathLogin          = "/users/login"
	PathListProducts   = "/products/allProducts"
	PathCreateProduct  = "/products/addProduct"
	PathListSuppliers  = "/supplier/all"
	PathCreateSupplier = "/supplier/addSupplier"
	PathListPurchases  = "/purchase/"
	PathCreatePurchase = "/purchase/addPurchase"
)

const (
	maxResponseBody = 1 << 20
	maxImageBody    = 10 << 20
)

var (
	// ErrUnauthenticated is returned when a call that needs a token is made without one
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrImageTooLarge is returned for images over maxImageBody bytes
	ErrImageTooLarge = errors.New("image is too large")
)

// APIError is returned for non-2xx responses and for envelopes with success=false.
// StatusCode is 0 when the request never produced a response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("inventory api: %s", e.Message)
	}
	return fmt.Sprintf("inventory api: status %d: %s", e.StatusCode, e.Message)
}

// Client is a thin JSON client for the inventory API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL. The transport is instrumented with otelhttp.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// NewWithHTTPClient creates a Client that uses hc as is
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginData, error) {
	var data models.LoginData
	if _, err := c.do(ctx, http.MethodPost, PathLogin, "", req, &data); err != nil {
		return nil, err
	}
	if data.Token == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "login response did not include a token"}
	}
	return &data, nil
}

// ListProducts returns every product
func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var products []models.Product
	if err := c.authed(ctx, http.MethodGet, PathListProducts, token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product and returns the API message
func (c *Client) CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (string, error) {
	return c.create(ctx, PathCreateProduct, token, req)
}

// ListSuppliers returns every supplier
func (c *Client) ListSuppliers(ctx context.Context, token string) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := c.authed(ctx, http.MethodGet, PathListSuppliers, token, nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CreateSupplier creates a supplier and returns the API message
func (c *Client) CreateSupplier(ctx context.Context, token string, req models.CreateSupplierRequest) (string, error) {
	return c.create(ctx, PathCreateSupplier, token, req)
}

// ListPurchases returns every purchase
func (c *Client) ListPurchases(ctx context.Context, token string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := c.authed(ctx, http.MethodGet, PathListPurchases, token, nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// CreatePurchase posts a purchase. It makes exactly one request and never retries.
func (c *Client) CreatePurchase(ctx context.Context, token string, req models.CreatePurchaseRequest) (string, error) {
	return c.create(ctx, PathCreatePurchase, token, req)
}

// FetchImage downloads an image by absolute URL. No auth header is sent.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "image endpoint returned an error"}
	}
	if resp.ContentLength > maxImageBody {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, resp.ContentLength)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageBody {
		return nil, fmt.Errorf("%w: over %d bytes", ErrImageTooLarge, maxImageBody)
	}
	return data, nil
}

func (c *Client) create(ctx context.Context, path, token string, body any) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	env, err := c.do(ctx, http.MethodPost, path, token, body, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) authed(ctx context.Context, method, path, token string, body, out any) error {
	if token == "" {
		return ErrUnauthenticated
	}
	_, err := c.do(ctx, method, path, token, body, out)
	return err
}

// do sends one request and decodes the {success, message, data} envelope.
// out receives the data block when non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) (*models.Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("❌ InventoryAPI: request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("InventoryAPI: response")

	var env models.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return &env, nil
}
