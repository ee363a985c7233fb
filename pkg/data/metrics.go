package data

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	selectOrderTotalsSQL = `SELECT
			COUNT(*) AS orders,
			COALESCE(SUM(total), 0) AS revenue,
			COALESCE(SUM(net_profit), 0) AS profit,
			COALESCE(AVG(total), 0) AS avg_order_value,
			COALESCE(AVG(fraud_score), 0) AS avg_fraud_score
		FROM orders
		WHERE created_at >= ?
	`

	selectStatusBreakdownSQL = `SELECT status, COUNT(*) AS cnt
		FROM orders
		WHERE created_at >= ?
		GROUP BY status
		ORDER BY cnt DESC
	`

	// Top products by units sold across order lines.
	selectTopProductsSQL = `SELECT
			i.name,
			SUM(i.quantity) AS units,
			SUM(i.price * i.quantity) AS revenue
		FROM order_item i
		JOIN orders o ON i.order_id = o.id
		WHERE o.created_at >= ?
		GROUP BY i.name
		ORDER BY units DESC
		LIMIT ?
	`

	selectDailyRevenueSQL = `SELECT
			substr(created_at, 1, 10) AS day,
			COUNT(*) AS orders,
			COALESCE(SUM(total), 0) AS revenue
		FROM orders
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day
	`

	// Review rate: share of orders that landed in fraud review.
	selectReviewRateSQL = `SELECT
			SUM(CASE WHEN status = 'fraud_review' THEN 1 ELSE 0 END),
			COUNT(*)
		FROM orders
		WHERE created_at >= ?
	`
)

// OrderTotals is the headline order metric set.
type OrderTotals struct {
	Orders        int     `json:"orders" yaml:"orders"`
	Revenue       float64 `json:"revenue" yaml:"revenue"`
	Profit        float64 `json:"profit" yaml:"profit"`
	AvgOrderValue float64 `json:"avg_order_value" yaml:"avg_order_value"`
	AvgFraudScore float64 `json:"avg_fraud_score" yaml:"avg_fraud_score"`
}

// StatusCount is one status bucket.
type StatusCount struct {
	Status string `json:"status" yaml:"status"`
	Count  int    `json:"count" yaml:"count"`
}

// ProductSales is one top-product row.
type ProductSales struct {
	Name    string  `json:"name" yaml:"name"`
	Units   int     `json:"units" yaml:"units"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

// DailyRevenue is one day of the revenue series.
type DailyRevenue struct {
	Day     string  `json:"day" yaml:"day"`
	Orders  int     `json:"orders" yaml:"orders"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

// Summary aggregates the business metrics over a window.
type Summary struct {
	Since        string          `json:"since" yaml:"since"`
	Totals       OrderTotals     `json:"totals" yaml:"totals"`
	StatusCounts []*StatusCount  `json:"status_counts,omitempty" yaml:"status_counts,omitempty"`
	TopProducts  []*ProductSales `json:"top_products,omitempty" yaml:"top_products,omitempty"`
	DailyRevenue []*DailyRevenue `json:"daily_revenue,omitempty" yaml:"daily_revenue,omitempty"`
	ReviewRate   float64         `json:"review_rate" yaml:"review_rate"`
}

// GetSummary computes the order metrics for the trailing window in days.
func GetSummary(db *sql.DB, days int) (*Summary, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	s := &Summary{Since: since}

	row := db.QueryRow(selectOrderTotalsSQL, since)
	if err := row.Scan(&s.Totals.Orders, &s.Totals.Revenue, &s.Totals.Profit,
		&s.Totals.AvgOrderValue, &s.Totals.AvgFraudScore); err != nil {
		return nil, fmt.Errorf("failed to scan order totals: %w", err)
	}

	var err error
	if s.StatusCounts, err = getStatusCounts(db, since); err != nil {
		return nil, err
	}
	if s.TopProducts, err = getTopProducts(db, since, 10); err != nil {
		return nil, err
	}
	if s.DailyRevenue, err = getDailyRevenue(db, since); err != nil {
		return nil, err
	}
	if s.ReviewRate, err = getReviewRate(db, since); err != nil {
		return nil, err
	}

	return s, nil
}

func getStatusCounts(db *sql.DB, since string) ([]*StatusCount, error) {
	rows, err := db.Query(selectStatusBreakdownSQL, since)
	if err != nil {
		return nil, fmt.Errorf("failed to execute status breakdown statement: %w", err)
	}
	defer rows.Close()

	list := make([]*StatusCount, 0)
	for rows.Next() {
		sc := &StatusCount{}
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

func getTopProducts(db *sql.DB, since string, limit int) ([]*ProductSales, error) {
	rows, err := db.Query(selectTopProductsSQL, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute top products statement: %w", err)
	}
	defer rows.Close()

	list := make([]*ProductSales, 0)
	for rows.Next() {
		ps := &ProductSales{}
		if err := rows.Scan(&ps.Name, &ps.Units, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product sales row: %w", err)
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

func getDailyRevenue(db *sql.DB, since string) ([]*DailyRevenue, error) {
	rows, err := db.Query(selectDailyRevenueSQL, since)
	if err != nil {
		return nil, fmt.Errorf("failed to execute daily revenue statement: %w", err)
	}
	defer rows.Close()

	list := make([]*DailyRevenue, 0)
	for rows.Next() {
		dr := &DailyRevenue{}
		if err := rows.Scan(&dr.Day, &dr.Orders, &dr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue row: %w", err)
		}
		list = append(list, dr)
	}
	return list, rows.Err()
}

func getReviewRate(db *sql.DB, since string) (float64, error) {
	var flagged, total sql.NullInt64
	if err := db.QueryRow(selectReviewRateSQL, since).Scan(&flagged, &total); err != nil {
		return 0, fmt.Errorf("failed to scan review rate: %w", err)
	}
	if total.Int64 == 0 {
		return 0, nil
	}
	return float64(flagged.Int64) / float64(total.Int64), nil
}
