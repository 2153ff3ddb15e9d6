package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestListProducts_SendsBearerAndDecodesSupplierRefs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathListProducts, r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[
			{"_id":"p1","name":"Arnés","supplier":{"_id":"s1","supplierName":"Acme"},"purchasePrice":10,"sellingPrice":18.5,"stockQty":3},
			{"_id":"p2","name":"Correa","supplier":"s2","purchasePrice":"20"},
			{"_id":"p3","name":"Sin proveedor","supplier":null,"purchasePrice":1}
		]}`)
	})

	products, err := c.ListProducts(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, models.SupplierRef{ID: "s1", Name: "Acme"}, products[0].Supplier)
	assert.True(t, products[0].SellingPrice.Equal(decimal.RequireFromString("18.5")))
	assert.Equal(t, "s2", products[1].SupplierID())
	assert.True(t, products[1].PurchasePrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "", products[2].SupplierID())
}

func TestListSuppliers_EmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":null}`)
	})

	suppliers, err := c.ListSuppliers(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

func TestAuthedCallsRequireToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.ListPurchases(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = c.CreatePurchase(context.Background(), "", models.CreatePurchaseRequest{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called)
}

func TestErrorStatusUsesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"success":false,"message":"Token expired"}`)
	})

	_, err := c.ListProducts(context.Background(), "tok")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestErrorStatusWithoutJSONFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `<html>bad gateway</html>`)
	})

	_, err := c.ListProducts(context.Background(), "tok")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestSuccessFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false,"message":"Supplier not found"}`)
	})

	_, err := c.CreatePurchase(context.Background(), "tok", models.CreatePurchaseRequest{SupplierID: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Equal(t, "Supplier not found", apiErr.Message)
}

func TestCreatePurchase_Payload(t *testing.T) {
	date := time.Date(2026, 1, 4, 10, 30, 0, 0, time.UTC)
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathCreatePurchase, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s1", body["supplierId"])
		assert.Equal(t, float64(10), body["totalAmount"])
		assert.Equal(t, "2026-01-04T10:30:00Z", body["date"])
		products, _ := body["products"].([]any)
		if !assert.Len(t, products, 1) {
			return
		}
		line, _ := products[0].(map[string]any)
		assert.Equal(t, "p1", line["productId"])
		assert.Equal(t, float64(2), line["qty"])
		assert.Equal(t, float64(5), line["purchasePrice"])

		io.WriteString(w, `{"success":true,"message":"Purchase added successfully"}`)
	})

	msg, err := c.CreatePurchase(context.Background(), "tok", models.CreatePurchaseRequest{
		SupplierID:  "s1",
		Products:    []models.PurchaseLine{{ProductID: "p1", Qty: 2, PurchasePrice: decimal.NewFromInt(5)}},
		TotalAmount: decimal.NewFromInt(10),
		Date:        date,
	})
	require.NoError(t, err)
	assert.Equal(t, "Purchase added successfully", msg)
	assert.Equal(t, 1, calls)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req.Email)
		io.WriteString(w, `{"success":true,"message":"ok","data":{"_id":"u1","name":"Admin","email":"admin@example.com","token":"jwt"}}`)
	})

	data, err := c.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", data.Token)
	assert.Equal(t, "Admin", data.Name)
}

func TestLogin_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"name":"Admin"}}`)
	})

	_, err := c.Login(context.Background(), models.LoginRequest{})
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.ListProducts(context.Background(), "tok")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListProducts(ctx, "tok")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("PNGDATA"))
	})

	data, err := c.FetchImage(context.Background(), c.baseURL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("PNGDATA"), data)

	_, err = c.FetchImage(context.Background(), c.baseURL+"/missing.png")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFetchImage_RejectsOversizeBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big.png" {
			w.Header().Set("Content-Length", strconv.Itoa(maxImageBody+1))
		}
		// without Content-Length the size is only known while reading
		w.Write(bytes.Repeat([]byte{'x'}, maxImageBody+1))
	})

	_, err := c.FetchImage(context.Background(), c.baseURL+"/big.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = c.FetchImage(context.Background(), c.baseURL+"/chunked.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestFetchImage_AcceptsBodyAtLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte{'x'}, maxImageBody))
	})

	data, err := c.FetchImage(context.Background(), c.baseURL+"/ok.png")
	require.NoError(t, err)
	assert.Len(t, data, maxImageBody)
}
