// Package storage persists products and sales in a local sqlite database and
// aggregates them into the series the analytics engine consumes: monthly
// revenue, daily demand, and per-product revenue totals.
//
// The store owns no analytical logic. It returns chronologically ordered,
// zero-filled series and trusts the engine to interpret them; the engine in
// turn trusts the store for filtering and ordering.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/stockpilot/stockpilot/internal/models"
)

// ErrNotFound is returned when a product or sale does not exist.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a sale would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// Store wraps the sqlite database. database/sql serializes access, so a
// single Store is safe to share across request handlers.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	sku        TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	price      TEXT NOT NULL,
	stock      INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sales (
	id         TEXT PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id),
	quantity   INTEGER NOT NULL,
	unit_price TEXT NOT NULL,
	total      TEXT NOT NULL,
	sold_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_product_time ON sales(product_id, sold_at);
CREATE INDEX IF NOT EXISTS idx_sales_time ON sales(sold_at);
`

// Open opens (creating if needed) the sqlite database at path and applies
// the schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProduct inserts a new product.
func (s *Store) CreateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO products (id, sku, name, category, price, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SKU, p.Name, p.Category, p.Price.String(), p.Stock,
		p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(id string) (*models.Product, error) {
	row := s.db.QueryRow(
		`SELECT id, sku, name, category, price, stock, created_at, updated_at
		 FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

// ListProducts returns all products ordered by name.
func (s *Store) ListProducts() ([]models.Product, error) {
	rows, err := s.db.Query(
		`SELECT id, sku, name, category, price, stock, created_at, updated_at
		 FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// UpdateProduct updates an existing product.
func (s *Store) UpdateProduct(p *models.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE products SET sku = ?, name = ?, category = ?, price = ?, stock = ?, updated_at = ?
		 WHERE id = ?`,
		p.SKU, p.Name, p.Category, p.Price.String(), p.Stock,
		p.UpdatedAt.UTC().Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product and its sales history.
func (s *Store) DeleteProduct(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM sales WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete sales: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// RecordSale inserts a sale and decrements the product's stock in one
// transaction. Fails with ErrInsufficientStock if stock would go negative.
func (s *Store) RecordSale(sale *models.Sale) error {
	if err := sale.Validate(); err != nil {
		return fmt.Errorf("invalid sale: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stock int
	err = tx.QueryRow(`SELECT stock FROM products WHERE id = ?`, sale.ProductID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("product %s: %w", sale.ProductID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}
	if stock < sale.Quantity {
		return fmt.Errorf("product %s has %d units, sale needs %d: %w",
			sale.ProductID, stock, sale.Quantity, ErrInsufficientStock)
	}

	if _, err := tx.Exec(
		`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ?`,
		sale.Quantity, sale.SoldAt.UTC().Format(time.RFC3339), sale.ProductID,
	); err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO sales (id, product_id, quantity, unit_price, total, sold_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.ProductID, sale.Quantity,
		sale.UnitPrice.String(), sale.Total.String(), sale.SoldAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	return tx.Commit()
}

// MonthlyRevenue returns revenue summed per calendar month over the trailing
// `months` window, oldest first and zero-filled so the engine sees a gapless
// series. An empty productID aggregates across the whole catalog.
func (s *Store) MonthlyRevenue(productID string, months int) ([]models.TimeSeriesPoint, error) {
	if months < 1 {
		return []models.TimeSeriesPoint{}, nil
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	query := `SELECT strftime('%Y-%m', sold_at) AS month, SUM(CAST(total AS REAL))
	          FROM sales WHERE sold_at >= ?`
	args := []any{start.Format(time.RFC3339)}
	if productID != "" {
		query += ` AND product_id = ?`
		args = append(args, productID)
	}
	query += ` GROUP BY month`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		totals[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]models.TimeSeriesPoint, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		series = append(series, models.TimeSeriesPoint{
			Timestamp: m,
			Value:     totals[m.Format("2006-01")],
		})
	}
	return series, nil
}

// DailyDemand returns units sold per day for a product over the trailing
// `days` window, oldest first and zero-filled.
func (s *Store) DailyDemand(productID string, days int) ([]float64, error) {
	if days < 1 {
		return []float64{}, nil
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	rows, err := s.db.Query(
		`SELECT strftime('%Y-%m-%d', sold_at) AS day, SUM(quantity)
		 FROM sales WHERE product_id = ? AND sold_at >= ?
		 GROUP BY day`,
		productID, start.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily demand: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var day string
		var qty float64
		if err := rows.Scan(&day, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan daily demand: %w", err)
		}
		totals[day] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	demand := make([]float64, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		demand = append(demand, totals[d.Format("2006-01-02")])
	}
	return demand, nil
}

// RevenueByProduct returns every product with its all-time revenue total,
// the classifier's input. Products with no sales contribute revenue 0.
func (s *Store) RevenueByProduct() ([]models.ProductRevenueRecord, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.name, COALESCE(SUM(CAST(s.total AS REAL)), 0)
		 FROM products p LEFT JOIN sales s ON s.product_id = p.id
		 GROUP BY p.id, p.name
		 ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by product: %w", err)
	}
	defer rows.Close()

	records := []models.ProductRevenueRecord{}
	for rows.Next() {
		var r models.ProductRevenueRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary aggregates the live store state for the insight responder.
// RecentSalesDelta compares the trailing 30 days of revenue against the 30
// days before that, as a percentage change; a zero previous period with
// current sales reads as +100%.
func (s *Store) Summary(lowStockThreshold int) (models.Summary, error) {
	var summary models.Summary

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN stock <= ? THEN 1 ELSE 0 END), 0)
		 FROM products`, lowStockThreshold).
		Scan(&summary.TotalProducts, &summary.LowStockItems)
	if err != nil {
		return summary, fmt.Errorf("failed to count products: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(CAST(total AS REAL)), 0) FROM sales`).
		Scan(&summary.TotalRevenue)
	if err != nil {
		return summary, fmt.Errorf("failed to sum revenue: %w", err)
	}

	now := time.Now().UTC()
	current, err := s.revenueBetween(now.AddDate(0, 0, -30), now)
	if err != nil {
		return summary, err
	}
	previous, err := s.revenueBetween(now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
	if err != nil {
		return summary, err
	}

	switch {
	case previous > 0:
		summary.RecentSalesDelta = (current - previous) / previous * 100
	case current > 0:
		summary.RecentSalesDelta = 100
	}

	return summary, nil
}

func (s *Store) revenueBetween(from, to time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(CAST(total AS REAL)), 0)
		 FROM sales WHERE sold_at >= ? AND sold_at < ?`,
		from.Format(time.RFC3339), to.Format(time.RFC3339)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue window: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var price, createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &price, &p.Stock, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &p, nil
}
