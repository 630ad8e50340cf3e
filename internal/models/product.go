// Package models defines the core domain entities for the stockpilot application.
// These models represent catalog products, recorded sales, and the value types
// produced by the analytics engine. Stored entities include built-in validation
// to ensure data integrity throughout the application.
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item tracked by the back office.
// Price is carried as a decimal to keep money arithmetic exact in the
// storage layer; it is converted to float64 only at the analytics boundary.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks that all product fields are valid.
func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New("product ID must not be empty")
	}
	if p.SKU == "" {
		return errors.New("product SKU must not be empty")
	}
	if p.Name == "" {
		return errors.New("product name must not be empty")
	}
	if p.Price.IsNegative() {
		return errors.New("product price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	if p.CreatedAt.After(p.UpdatedAt) {
		return errors.New("created at must be <= updated at")
	}
	return nil
}

// Sale represents one recorded sale of a product.
// Total is quantity × unit price at the time of sale, carried as a decimal.
type Sale struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	SoldAt    time.Time       `json:"sold_at"`
}

// Validate checks that all sale fields are valid.
func (s *Sale) Validate() error {
	if s.ID == "" {
		return errors.New("sale ID must not be empty")
	}
	if s.ProductID == "" {
		return errors.New("sale product ID must not be empty")
	}
	if s.Quantity <= 0 {
		return errors.New("sale quantity must be positive")
	}
	if s.UnitPrice.IsNegative() {
		return errors.New("sale unit price must not be negative")
	}
	expected := s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	if !s.Total.Equal(expected) {
		return errors.New("sale total must equal quantity × unit price")
	}
	return nil
}

// Summary aggregates the live state of the store for the insight responder.
type Summary struct {
	TotalProducts    int     `json:"total_products"`
	LowStockItems    int     `json:"low_stock_items"`
	TotalRevenue     float64 `json:"total_revenue"`
	RecentSalesDelta float64 `json:"recent_sales_delta"`
}
