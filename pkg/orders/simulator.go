package orders

import (
	"fmt"
	"math/rand"

	"github.com/dropsim/dropctl/pkg/catalog"
)

type sampleCustomer struct {
	customer Customer
	ip       string
	risky    bool
}

var sampleCustomers = []sampleCustomer{
	{
		customer: Customer{
			Name: "Sarah Johnson", Email: "sarah.johnson@gmail.com",
			Phone: "+1-555-201-3344", PaymentMethod: "paypal",
			Address: Address{Line1: "123 Maple Street", City: "Austin", State: "TX", Zip: "78701", Country: "US"},
		},
		ip: "73.45.12.9",
	},
	{
		customer: Customer{
			Name: "John Smith", Email: "john.smith@gmail.com",
			Phone: "+1-555-123-4567", PaymentMethod: "paypal",
			Address: Address{Line1: "123 Main Street", Line2: "Apt 4B", City: "New York", State: "NY", Zip: "10001", Country: "US"},
		},
		ip: "98.116.44.2",
	},
	{
		customer: Customer{
			Name: "Emma Wilson", Email: "emma.w.shop@outlook.com",
			PaymentMethod: "stripe",
			Address:       Address{Line1: "55 Oak Avenue", City: "Denver", State: "CO", Zip: "80202", Country: "US"},
		},
		ip: "64.233.18.110",
	},
	{
		customer: Customer{
			Name: "Mike Chen", Email: "mchen2024@yahoo.com",
			PaymentMethod: "stripe",
			Address:       Address{Line1: "900 Pine Road", City: "Seattle", State: "WA", Zip: "98101", Country: "US"},
		},
		ip: "50.22.101.77",
	},
	{
		customer: Customer{
			Name: "Alex Turner", Email: "xk93021@tempmail.com",
			PaymentMethod: "paypal",
			Address:       Address{Line1: "100 MyUS Forwarding Dr", City: "Sarasota", State: "FL", Zip: "34238", Country: "US"},
		},
		ip:    "192.168.1.100",
		risky: true,
	},
	{
		customer: Customer{
			Name: "Taiwo Ade", Email: "qz81734@guerrillamail.com",
			PaymentMethod: "paypal",
			Address:       Address{Line1: "12 Broad St", City: "Lagos", Country: "NG"},
		},
		ip:    "10.4.8.12",
		risky: true,
	},
}

// Simulator generates synthetic orders against the seed catalog. A fixed
// seed yields an identical order stream.
type Simulator struct {
	rng     *rand.Rand
	manager *Manager
}

func NewSimulator(seed int64, m *Manager) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed)), manager: m}
}

// Run creates count orders from the sample customer pool and seed
// products.
func (s *Simulator) Run(count int) []*Order {
	discovery := catalog.NewDiscovery(s.rng.Int63())
	products := discovery.Discover(0)

	out := make([]*Order, 0, count)
	for i := 0; i < count; i++ {
		sc := s.pickCustomer()
		cart := s.pickCart(products)
		out = append(out, s.manager.Create(sc.customer, cart, sc.ip))
	}
	return out
}

func (s *Simulator) pickCustomer() sampleCustomer {
	// risky customers show up about 15% of the time
	if s.rng.Float64() < 0.15 {
		risky := make([]sampleCustomer, 0, 2)
		for _, c := range sampleCustomers {
			if c.risky {
				risky = append(risky, c)
			}
		}
		return risky[s.rng.Intn(len(risky))]
	}
	clean := make([]sampleCustomer, 0, len(sampleCustomers))
	for _, c := range sampleCustomers {
		if !c.risky {
			clean = append(clean, c)
		}
	}
	return clean[s.rng.Intn(len(clean))]
}

func (s *Simulator) pickCart(products []*catalog.Product) []Item {
	n := 1 + s.rng.Intn(3)
	cart := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		p := products[s.rng.Intn(len(products))]
		cart = append(cart, Item{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       fmt.Sprintf("SKU-%s-%02d", p.Niche[:3], i),
			Price:     p.RetailPrice,
			Quantity:  1 + s.rng.Intn(2),
		})
	}
	return cart
}
