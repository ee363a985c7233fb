package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropsim/dropctl/pkg/orders"
)

const (
	insertOrderSQL = `INSERT INTO orders (
			id,
			status,
			customer_name,
			customer_email,
			country,
			subtotal,
			shipping,
			tax,
			total,
			fraud_score,
			fraud_risk_level,
			customer_tier,
			supplier,
			net_profit,
			profit_margin,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = ?
	`

	insertOrderItemSQL = `INSERT INTO order_item (
			order_id,
			product_id,
			name,
			sku,
			price,
			quantity
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id, name) DO UPDATE SET
			quantity = ?
	`

	selectOrderSQL = `SELECT
			id,
			status,
			COALESCE(customer_name, '') AS customer_name,
			customer_email,
			subtotal,
			shipping,
			tax,
			total,
			COALESCE(fraud_score, 0) AS fraud_score,
			COALESCE(fraud_risk_level, '') AS fraud_risk_level,
			COALESCE(customer_tier, '') AS customer_tier,
			COALESCE(net_profit, 0) AS net_profit,
			created_at
		FROM orders
		WHERE status = COALESCE(?, status)
		ORDER BY created_at DESC
		LIMIT ?
	`

	selectOrderHistorySQL = `SELECT created_at, total, status
		FROM orders
		WHERE customer_email = ?
		ORDER BY created_at
	`
)

// OrderListItem is a persisted order row.
type OrderListItem struct {
	ID             string  `json:"id" yaml:"id"`
	Status         string  `json:"status" yaml:"status"`
	CustomerName   string  `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	CustomerEmail  string  `json:"customer_email" yaml:"customer_email"`
	Subtotal       float64 `json:"subtotal" yaml:"subtotal"`
	Shipping       float64 `json:"shipping" yaml:"shipping"`
	Tax            float64 `json:"tax" yaml:"tax"`
	Total          float64 `json:"total" yaml:"total"`
	FraudScore     float64 `json:"fraud_score" yaml:"fraud_score"`
	FraudRiskLevel string  `json:"fraud_risk_level,omitempty" yaml:"fraud_risk_level,omitempty"`
	CustomerTier   string  `json:"customer_tier,omitempty" yaml:"customer_tier,omitempty"`
	NetProfit      float64 `json:"net_profit" yaml:"net_profit"`
	CreatedAt      string  `json:"created_at" yaml:"created_at"`
}

// SaveOrders stores orders and their line items in a single transaction.
func SaveOrders(db *sql.DB, list []*orders.Order) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(list) == 0 {
		return nil
	}

	orderStmt, err := db.Prepare(insertOrderSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare order insert statement: %w", err)
	}
	itemStmt, err := db.Prepare(insertOrderItemSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare order item insert statement: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, o := range list {
		supplierID := ""
		if o.Route != nil {
			supplierID = o.Route.Supplier
		}

		if _, err = tx.Stmt(orderStmt).Exec(
			o.ID, string(o.Status), o.Customer.Name, o.Customer.Email,
			o.Customer.Address.Country, o.Subtotal, o.Shipping, o.Tax, o.Total,
			o.FraudScore, o.FraudRiskLevel, o.CustomerTier, supplierID,
			o.NetProfit, o.ProfitMargin, o.CreatedAt.UTC().Format(time.RFC3339),
			string(o.Status)); err != nil {
			slog.Error("failed to insert order", "index", i, "id", o.ID, "error", err)
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return fmt.Errorf("failed to execute order insert statement: %w", err)
		}

		for _, it := range o.Items {
			if _, err = tx.Stmt(itemStmt).Exec(
				o.ID, it.ProductID, it.Name, it.SKU, it.Price, it.Quantity,
				it.Quantity); err != nil {
				if err = tx.Rollback(); err != nil {
					return fmt.Errorf("failed to rollback transaction: %w", err)
				}
				return fmt.Errorf("failed to execute order item insert statement: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListOrders returns saved orders, newest first. An empty status returns
// every status.
func ListOrders(db *sql.DB, status string, limit int) ([]*OrderListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		limit = 100
	}

	var s interface{}
	if status != "" {
		s = status
	}

	rows, err := db.Query(selectOrderSQL, s, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute order select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*OrderListItem, 0)
	for rows.Next() {
		item := &OrderListItem{}
		if err := rows.Scan(&item.ID, &item.Status, &item.CustomerName,
			&item.CustomerEmail, &item.Subtotal, &item.Shipping, &item.Tax,
			&item.Total, &item.FraudScore, &item.FraudRiskLevel,
			&item.CustomerTier, &item.NetProfit, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetOrderHistory returns a customer's prior orders for profile rebuilds.
func GetOrderHistory(db *sql.DB, email string) ([]*orders.Order, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectOrderHistorySQL, email)
	if err != nil {
		return nil, fmt.Errorf("failed to execute order history statement: %w", err)
	}
	defer rows.Close()

	history := make([]*orders.Order, 0)
	for rows.Next() {
		var created, status string
		var total float64
		if err := rows.Scan(&created, &total, &status); err != nil {
			return nil, fmt.Errorf("failed to scan order history row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("failed to parse order timestamp: %w", err)
		}
		history = append(history, &orders.Order{
			CreatedAt: ts,
			Total:     total,
			Status:    orders.Status(status),
		})
	}
	return history, rows.Err()
}
