package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/models"
	"github.com/stockpilot/stockpilot/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewServer(store, config.AnalyticsConfig{
		TrendMonths:       12,
		DemandDays:        30,
		ForecastPeriods:   3,
		LowStockThreshold: 10,
	})
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createTestProduct(t *testing.T, s *Server, sku string, stock int) models.Product {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/products", productRequest{
		SKU:   sku,
		Name:  "Widget " + sku,
		Price: "19.99",
		Stock: stock,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: status %d, body %s", rec.Code, rec.Body.String())
	}
	var p models.Product
	decodeBody(t, rec, &p)
	return p
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t)
	p := createTestProduct(t, s, "SKU-1", 10)

	rec := doRequest(t, s, http.MethodGet, "/api/products/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPut, "/api/products/"+p.ID, productRequest{
		SKU:   "SKU-1",
		Name:  "Widget Pro",
		Price: "29.99",
		Stock: 20,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Product
	decodeBody(t, rec, &updated)
	if updated.Name != "Widget Pro" || updated.Stock != 20 {
		t.Errorf("update not applied: %+v", updated)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/products/"+p.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = doRequest(t, s, http.MethodGet, "/api/products/"+p.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestCreateProduct_Invalid(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/products", productRequest{
		SKU: "", Name: "No SKU", Price: "5.00", Stock: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty SKU: status %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/products", productRequest{
		SKU: "SKU-2", Name: "Bad price", Price: "not-a-number", Stock: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad price: status %d, want 400", rec.Code)
	}
}

func TestRecordSale(t *testing.T) {
	s := newTestServer(t)
	p := createTestProduct(t, s, "SKU-1", 10)

	rec := doRequest(t, s, http.MethodPost, "/api/sales", saleRequest{
		ProductID: p.ID, Quantity: 4, UnitPrice: "19.99",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record sale: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/api/products/"+p.ID, nil)
	var got models.Product
	decodeBody(t, rec, &got)
	if got.Stock != 6 {
		t.Errorf("stock = %d, want 6", got.Stock)
	}
}

func TestRecordSale_Errors(t *testing.T) {
	s := newTestServer(t)
	p := createTestProduct(t, s, "SKU-1", 2)

	tests := []struct {
		name string
		req  saleRequest
		want int
	}{
		{"insufficient stock", saleRequest{ProductID: p.ID, Quantity: 5, UnitPrice: "19.99"}, http.StatusConflict},
		{"unknown product", saleRequest{ProductID: "missing", Quantity: 1, UnitPrice: "19.99"}, http.StatusNotFound},
		{"zero quantity", saleRequest{ProductID: p.ID, Quantity: 0, UnitPrice: "19.99"}, http.StatusBadRequest},
		{"bad price", saleRequest{ProductID: p.ID, Quantity: 1, UnitPrice: "free"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/sales", tt.req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestTrendEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/analytics/trend", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result models.PredictionResult
	decodeBody(t, rec, &result)
	// An empty store yields a zero-mean series: no confidence, stable label.
	if result.Confidence != 0 || result.Trend != models.TrendStable {
		t.Errorf("empty store trend = %+v, want zero-confidence stable", result)
	}
}

func TestForecastEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/analytics/forecast?periods=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var forecast models.RevenueForecast
	decodeBody(t, rec, &forecast)
	if len(forecast.Forecasts) != 2 {
		t.Errorf("got %d forecast points, want 2", len(forecast.Forecasts))
	}

	rec = doRequest(t, s, http.MethodGet, "/api/analytics/forecast?periods=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid periods: status %d, want 400", rec.Code)
	}
}

func TestAnomaliesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/analytics/anomalies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report models.AnomalyReport
	decodeBody(t, rec, &report)
	if len(report.Anomalies) != 0 {
		t.Errorf("empty store produced %d anomalies", len(report.Anomalies))
	}
}

func TestReorderEndpoint(t *testing.T) {
	s := newTestServer(t)
	p := createTestProduct(t, s, "SKU-1", 50)

	rec := doRequest(t, s, http.MethodPost, "/api/sales", saleRequest{
		ProductID: p.ID, Quantity: 5, UnitPrice: "19.99",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record sale: status %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/analytics/reorder/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var plan models.ReorderPlan
	decodeBody(t, rec, &plan)
	if plan.ReorderPoint < 0 || plan.SafetyStock < 0 {
		t.Errorf("plan has negative values: %+v", plan)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/analytics/reorder/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown product: status %d, want 404", rec.Code)
	}
}

func TestABCEndpoint(t *testing.T) {
	s := newTestServer(t)

	products := make([]models.Product, 3)
	for i, qty := range []int{40, 8, 2} {
		p := createTestProduct(t, s, fmt.Sprintf("SKU-%d", i), 100)
		rec := doRequest(t, s, http.MethodPost, "/api/sales", saleRequest{
			ProductID: p.ID, Quantity: qty, UnitPrice: "10.00",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("record sale: status %d", rec.Code)
		}
		products[i] = p
	}

	rec := doRequest(t, s, http.MethodGet, "/api/analytics/abc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var classification models.RevenueClassification
	decodeBody(t, rec, &classification)
	total := len(classification.ClassA) + len(classification.ClassB) + len(classification.ClassC)
	if total != len(products) {
		t.Errorf("partition covers %d products, want %d", total, len(products))
	}
}

func TestAssistantEndpoint(t *testing.T) {
	s := newTestServer(t)
	createTestProduct(t, s, "SKU-1", 2)

	rec := doRequest(t, s, http.MethodPost, "/api/assistant", assistantRequest{
		Query: "how is my stock, any good news?",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp assistantResponse
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Reply, "running low") {
		t.Errorf("reply = %q, want the low-stock answer", resp.Reply)
	}
	if resp.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want positive", resp.Sentiment)
	}
}

func TestAssistantEndpoint_EmptyQuery(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/assistant", assistantRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
