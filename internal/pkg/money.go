package pkg

import "math"

// RoundMoney rounds to 2 decimal places, matching the decimal(15,2) columns.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
