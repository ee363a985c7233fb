package orders

import (
	"fmt"
	"time"

	"github.com/dropsim/dropctl/pkg/fraud"
)

// Manager owns the order lifecycle: creation, fraud screening, routing,
// and status transitions.
type Manager struct {
	engine   *fraud.Engine
	profiles *Profiles
	router   *Router
	now      func() time.Time
}

func NewManager() *Manager {
	return NewManagerWithEngine(fraud.NewEngine())
}

// NewManagerWithEngine allows a config-overridden fraud engine.
func NewManagerWithEngine(e *fraud.Engine) *Manager {
	return &Manager{
		engine:   e,
		profiles: NewProfiles(),
		router:   NewRouter(),
		now:      time.Now,
	}
}

// Create builds a fully analyzed order from customer data and a cart.
// High or critical fraud risk lands the order in fraud review.
func (m *Manager) Create(c Customer, cart []Item, ip string) *Order {
	subtotal := CartSubtotal(cart)
	shipping := ShippingFor(subtotal, PriorityStandard)
	tax := TaxFor(subtotal)

	o := &Order{
		ID:        NewOrderID(),
		CreatedAt: m.now(),
		Status:    StatusPending,
		Customer:  c,
		Items:     cart,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal + shipping + tax,
		Payment:   Payment{Method: c.PaymentMethod},
	}
	if o.Payment.Method == "" {
		o.Payment.Method = "paypal"
	}

	assessment := m.engine.Assess(m.fraudInput(o, ip))
	o.FraudScore = assessment.Total
	o.FraudRiskLevel = string(assessment.RiskLevel)

	profile := m.profiles.Get(c.Email)
	o.CustomerTier = profile.Tier()
	o.Route = m.router.Route(o, profile)

	o.CostOfGoods = o.Total * 0.35
	o.NetProfit = o.Total - o.CostOfGoods - o.Shipping
	if o.Total > 0 {
		o.ProfitMargin = o.NetProfit / o.Total
	}

	if assessment.RiskLevel == fraud.RiskHigh || assessment.RiskLevel == fraud.RiskCritical {
		o.Status = StatusFraudReview
	}

	chargeback := ChargebackRisk(o, profile, assessment.Total)
	if assessment.RiskLevel != fraud.RiskLow {
		o.RiskFlags = append(o.RiskFlags, "fraud risk: "+string(assessment.RiskLevel))
	}
	if chargeback > 0.15 {
		o.RiskFlags = append(o.RiskFlags, fmt.Sprintf("chargeback risk: %.1f%%", chargeback*100))
	}
	if o.ProfitMargin < MinAcceptableMargin {
		o.RiskFlags = append(o.RiskFlags, fmt.Sprintf("low margin: %.1f%%", o.ProfitMargin*100))
	}

	return o
}

// UpdateStatus transitions the order and records the change.
func (m *Manager) UpdateStatus(o *Order, to Status, notes string) {
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		From:      o.Status,
		To:        to,
		Timestamp: m.now(),
		Notes:     notes,
	})
	o.Status = to
}

// Profiles exposes the customer profile store.
func (m *Manager) Profiles() *Profiles {
	return m.profiles
}

func (m *Manager) fraudInput(o *Order, ip string) fraud.OrderInfo {
	items := make([]fraud.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fraud.Item{Name: it.Name, Quantity: it.Quantity})
	}
	return fraud.OrderInfo{
		OrderID:      o.ID,
		CustomerName: o.Customer.Name,
		Email:        o.Customer.Email,
		Address: fraud.Address{
			Line1:   o.Customer.Address.Line1,
			City:    o.Customer.Address.City,
			State:   o.Customer.Address.State,
			Zip:     o.Customer.Address.Zip,
			Country: o.Customer.Address.Country,
		},
		Total: o.Total,
		Items: items,
		IP:    ip,
	}
}
