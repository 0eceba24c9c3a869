package mocks

import (
	"net/http"
	"parking/infras/metrics"
	"strconv"
	"sync"
	"time"
)

// Metrics counts observations in memory.
type Metrics struct {
	mu       sync.Mutex
	Bookings map[string]int
	Releases map[string]int
	Revenue  float64
	Requests []string
}

var _ metrics.Metrics = (*Metrics)(nil)

func NewMetrics() *Metrics {
	return &Metrics{
		Bookings: map[string]int{},
		Releases: map[string]int{},
	}
}

func (m *Metrics) ObserveBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Bookings[outcome]++
}

func (m *Metrics) ObserveRelease(outcome string, _, cost float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Releases[outcome]++
	if outcome == metrics.OutcomeSuccess {
		m.Revenue += cost
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, method+" "+route+" "+strconv.Itoa(status))
}

func (m *Metrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (m *Metrics) BookingCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Bookings[outcome]
}
