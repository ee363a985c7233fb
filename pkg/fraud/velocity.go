package fraud

import (
	"sync"
	"time"
)

const (
	emailWindow = 24 * time.Hour
	ipWindow    = time.Hour
)

// VelocityTracker counts recent orders per email and per IP inside sliding
// windows. The clock is injectable for tests.
type VelocityTracker struct {
	mu     sync.Mutex
	emails map[string][]time.Time
	ips    map[string][]time.Time
	now    func() time.Time
}

func NewVelocityTracker() *VelocityTracker {
	return &VelocityTracker{
		emails: make(map[string][]time.Time),
		ips:    make(map[string][]time.Time),
		now:    time.Now,
	}
}

// RecordEmail registers an order for the email and returns the count of
// orders seen in the last 24 hours, including this one.
func (v *VelocityTracker) RecordEmail(email string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.emails[email] = record(v.emails[email], v.now(), emailWindow)
	return len(v.emails[email])
}

// RecordIP registers an order for the IP and returns the count of orders
// seen in the last hour, including this one.
func (v *VelocityTracker) RecordIP(ip string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ips[ip] = record(v.ips[ip], v.now(), ipWindow)
	return len(v.ips[ip])
}

func record(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return append(kept, now)
}
