package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot/internal/analytics"
	"github.com/stockpilot/stockpilot/internal/models"
	"github.com/stockpilot/stockpilot/internal/storage"
)

type productRequest struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
}

type saleRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type assistantRequest struct {
	Query string `json:"query"`
}

type assistantResponse struct {
	Reply     string `json:"reply"`
	Sentiment string `json:"sentiment"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:        uuid.New().String(),
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Price:     price,
		Stock:     req.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := product.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateProduct(product); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := s.store.ListProducts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.store.GetProduct(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.store.GetProduct(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Category = req.Category
	product.Price = price
	product.Stock = req.Stock
	product.UpdatedAt = time.Now().UTC()

	if err := product.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateProduct(product); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid unit price")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	sale := &models.Sale{
		ID:        uuid.New().String(),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		SoldAt:    time.Now().UTC(),
	}

	if err := s.store.RecordSale(sale); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	series, err := s.store.MonthlyRevenue(r.URL.Query().Get("product_id"), s.cfg.TrendMonths)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.PredictNextValue(series))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	periods := s.cfg.ForecastPeriods
	if raw := r.URL.Query().Get("periods"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid periods")
			return
		}
		periods = parsed
	}

	series, err := s.store.MonthlyRevenue(r.URL.Query().Get("product_id"), s.cfg.TrendMonths)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.ForecastRevenue(series, periods))
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	series, err := s.store.MonthlyRevenue(r.URL.Query().Get("product_id"), s.cfg.TrendMonths)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.DetectAnomalies(series))
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.store.GetProduct(id); err != nil {
		writeStoreError(w, err)
		return
	}

	demand, err := s.store.DailyDemand(id, s.cfg.DemandDays)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.PlanReorder(demand))
}

func (s *Server) handleABC(w http.ResponseWriter, _ *http.Request) {
	records, err := s.store.RevenueByProduct()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Classify(records))
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	summary, err := s.store.Summary(s.cfg.LowStockThreshold)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assistantResponse{
		Reply:     analytics.Respond(req.Query, summary),
		Sentiment: analytics.AnalyzeSentiment(req.Query),
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
