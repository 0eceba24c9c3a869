package service

import (
	"parking/shared"
	"parking/shared/constant"
	"time"
)

const billingPrecision = 2

// CalculateCost bills the elapsed time at the hourly price. Hours and cost are rounded to two
// decimals and the charge never drops below one hour's price.
func CalculateCost(start, end time.Time, pricePerHour float64) (hours, cost float64) {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	hours = shared.RoundTo(elapsed.Seconds()/constant.SecondsPerHour, billingPrecision)

	cost = shared.RoundTo(hours*pricePerHour, billingPrecision)
	if cost < pricePerHour {
		cost = pricePerHour
	}

	return hours, cost
}
