package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *MercadoPagoClient {
	return NewMercadoPagoClient(MercadoPagoConfig{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		Timeout:     2 * time.Second,
	})
}

func TestConfigured(t *testing.T) {
	assert.True(t, testClient("http://localhost").Configured())
	assert.False(t, NewMercadoPagoClient(MercadoPagoConfig{}).Configured())
}

func TestCreatePreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PreferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ORDER-ABCD1234", req.ExternalReference)
		require.Len(t, req.Items, 1)
		assert.Equal(t, "Adult Day Pass", req.Items[0].Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PreferenceResponse{
			ID:        "pref-42",
			InitPoint: "https://mp.test/init/pref-42",
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	resp, err := client.CreatePreference(context.Background(), PreferenceRequest{
		Items:             []PreferenceItem{{Title: "Adult Day Pass", Quantity: 2, UnitPrice: 80}},
		ExternalReference: "ORDER-ABCD1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-42", resp.ID)
	assert.Equal(t, "https://mp.test/init/pref-42", resp.InitPoint)
}

func TestCreatePreference_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreatePreference(context.Background(), PreferenceRequest{})
	assert.Error(t, err)
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/555", r.URL.Path)
		w.Write([]byte(`{"id": 555, "status": "approved", "external_reference": "ORDER-ABCD1234"}`))
	}))
	defer server.Close()

	payment, err := testClient(server.URL).GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "555", payment.ID.String())
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "ORDER-ABCD1234", payment.ExternalReference)
}

func TestRetryOn5xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id": 555, "status": "approved"}`))
	}))
	defer server.Close()

	payment, err := testClient(server.URL).GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNoRetryOn4xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "payment not found"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetPayment(context.Background(), "555")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGivesUpAfterRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetPayment(context.Background(), "555")
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
