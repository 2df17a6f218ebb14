package supplier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
)

func TestClient_FetchTires_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))

		response := map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": 1, "code": "MIC-P4", "name": "Michelin Primacy 4", "brand": "Michelin", "wholesale_price": "50.00", "is_active": true},
				{"id": 2, "code": "CON-PC6", "name": "Continental PremiumContact 6", "brand": "Continental", "wholesale_price": "62.50"},
			},
			"total_pages": 1,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	cfg := config.SupplierConfig{
		BaseURL:    server.URL,
		APIKey:     "test-api-key",
		SupplierID: "triangle",
		PageSize:   500,
		SleepMS:    1,
	}

	client := NewClient(cfg)
	tires, err := client.FetchTires(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, tires, 2)
	assert.Equal(t, int64(1), tires[0].ID)
	assert.Equal(t, "Michelin Primacy 4", tires[0].Name)
	assert.True(t, tires[0].Priced())
	assert.True(t, tires[1].Active)
}

func TestClient_FetchTires_Paginated(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page, _ := strconv.Atoi(r.URL.Query().Get("page_number"))

		var data []map[string]interface{}
		if page <= 2 {
			data = []map[string]interface{}{
				{"id": page, "name": "Tire", "wholesale_price": "10.00"},
			}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":        data,
			"total_pages": 2,
		})
	}))
	defer server.Close()

	cfg := config.SupplierConfig{
		BaseURL:    server.URL,
		APIKey:     "k",
		SupplierID: "s",
		PageSize:   1,
		SleepMS:    1,
	}

	client := NewClient(cfg)
	tires, err := client.FetchTires(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, tires, 2)
	assert.Equal(t, 2, pagesServed)
}

func TestClient_FetchTires_EmptyAPIKey(t *testing.T) {
	cfg := config.SupplierConfig{
		BaseURL:    "https://feed.example.com",
		APIKey:     "",
		SupplierID: "triangle",
	}

	client := NewClient(cfg)
	tires, err := client.FetchTires(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, tires)
}

func TestClient_FetchTires_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := config.SupplierConfig{
		BaseURL:    server.URL,
		APIKey:     "k",
		SupplierID: "s",
		SleepMS:    1,
	}

	client := NewClient(cfg)
	_, err := client.FetchTires(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
