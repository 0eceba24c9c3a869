package service_test

import (
	"testing"
	"time"

	"parking/internal/domains/reservation/service"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCost(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		elapsed   time.Duration
		price     float64
		wantHours float64
		wantCost  float64
	}{
		{name: "half hour charges the minimum", elapsed: 30 * time.Minute, price: 10, wantHours: 0.5, wantCost: 10},
		{name: "partial hours are prorated", elapsed: 2*time.Hour + 18*time.Minute, price: 10, wantHours: 2.3, wantCost: 23},
		{name: "exactly one hour", elapsed: time.Hour, price: 5, wantHours: 1, wantCost: 5},
		{name: "instant release", elapsed: 0, price: 7.5, wantHours: 0, wantCost: 7.5},
		{name: "hours rounded before pricing", elapsed: 100 * time.Minute, price: 3, wantHours: 1.67, wantCost: 5.01},
		{name: "clock skew treated as zero", elapsed: -time.Minute, price: 4, wantHours: 0, wantCost: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, cost := service.CalculateCost(start, start.Add(tt.elapsed), tt.price)

			assert.InDelta(t, tt.wantHours, hours, 1e-9)
			assert.InDelta(t, tt.wantCost, cost, 1e-9)
		})
	}
}
