// Package orders models the order lifecycle: creation with fraud screening,
// customer profiling, smart fulfillment routing, status tracking, and
// webhook notification.
package orders

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending        Status = "pending"
	StatusFraudReview    Status = "fraud_review"
	StatusPaymentPending Status = "payment_pending"
	StatusPaid           Status = "paid"
	StatusProcessing     Status = "processing"
	StatusAwaitingSupply Status = "awaiting_supplier"
	StatusShipped        Status = "shipped"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
	StatusDisputed       Status = "disputed"
	StatusChargeback     Status = "chargeback"
)

// Priority is the fulfillment priority tier.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityExpress  Priority = "express"
	PriorityVIP      Priority = "vip"
)

const (
	FreeShippingThreshold = 50.0
	StandardShipping      = 4.99
	ExpressShipping       = 9.99
	TaxRate               = 0.08

	TargetMargin        = 0.50
	MinAcceptableMargin = 0.30
)

// Item is one order line.
type Item struct {
	ProductID string  `json:"product_id" yaml:"product_id"`
	Name      string  `json:"name" yaml:"name"`
	SKU       string  `json:"sku" yaml:"sku"`
	Price     float64 `json:"price" yaml:"price"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
}

// Address is a shipping destination.
type Address struct {
	Line1   string `json:"line1" yaml:"line1"`
	Line2   string `json:"line2,omitempty" yaml:"line2,omitempty"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	Zip     string `json:"zip" yaml:"zip"`
	Country string `json:"country" yaml:"country"`
}

// Customer is the buyer on an order.
type Customer struct {
	Name          string  `json:"name" yaml:"name"`
	Email         string  `json:"email" yaml:"email"`
	Phone         string  `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address       Address `json:"address" yaml:"address"`
	PaymentMethod string  `json:"payment_method" yaml:"payment_method"`
}

// Payment tracks the payment leg of an order.
type Payment struct {
	Method        string     `json:"method" yaml:"method"`
	TransactionID string     `json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty" yaml:"paid_at,omitempty"`
}

// Fulfillment tracks the supplier leg of an order.
type Fulfillment struct {
	SupplierOrderID   string     `json:"supplier_order_id,omitempty" yaml:"supplier_order_id,omitempty"`
	TrackingNumber    string     `json:"tracking_number,omitempty" yaml:"tracking_number,omitempty"`
	Carrier           string     `json:"carrier,omitempty" yaml:"carrier,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty" yaml:"shipped_at,omitempty"`
	EstimatedDelivery string     `json:"estimated_delivery,omitempty" yaml:"estimated_delivery,omitempty"`
}

// StatusChange is one entry in the order status history.
type StatusChange struct {
	From      Status    `json:"from" yaml:"from"`
	To        Status    `json:"to" yaml:"to"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Order is a complete order with analysis attached.
type Order struct {
	ID          string      `json:"id" yaml:"id"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	Status      Status      `json:"status" yaml:"status"`
	Customer    Customer    `json:"customer" yaml:"customer"`
	Items       []Item      `json:"items" yaml:"items"`
	Subtotal    float64     `json:"subtotal" yaml:"subtotal"`
	Shipping    float64     `json:"shipping" yaml:"shipping"`
	Tax         float64     `json:"tax" yaml:"tax"`
	Total       float64     `json:"total" yaml:"total"`
	Payment     Payment     `json:"payment" yaml:"payment"`
	Fulfillment Fulfillment `json:"fulfillment" yaml:"fulfillment"`

	FraudScore     float64  `json:"fraud_score" yaml:"fraud_score"`
	FraudRiskLevel string   `json:"fraud_risk_level" yaml:"fraud_risk_level"`
	CustomerTier   string   `json:"customer_tier" yaml:"customer_tier"`
	Route          *Route   `json:"route,omitempty" yaml:"route,omitempty"`
	CostOfGoods    float64  `json:"cost_of_goods" yaml:"cost_of_goods"`
	NetProfit      float64  `json:"net_profit" yaml:"net_profit"`
	ProfitMargin   float64  `json:"profit_margin" yaml:"profit_margin"`
	RiskFlags      []string `json:"risk_flags,omitempty" yaml:"risk_flags,omitempty"`

	StatusHistory []StatusChange `json:"status_history,omitempty" yaml:"status_history,omitempty"`
}

// NewOrderID returns a fresh order identifier.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Subtotal sums the line totals of a cart.
func CartSubtotal(items []Item) float64 {
	var s float64
	for _, it := range items {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		s += it.Price * float64(q)
	}
	return s
}

// ShippingFor returns the shipping charge for a subtotal and priority.
// Orders at or above the free shipping threshold ship free.
func ShippingFor(subtotal float64, priority Priority) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	if priority == PriorityExpress || priority == PriorityVIP {
		return ExpressShipping
	}
	return StandardShipping
}

// TaxFor returns the tax charge for a subtotal, rounded to cents.
func TaxFor(subtotal float64) float64 {
	return round2(subtotal * TaxRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
