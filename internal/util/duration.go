package util

import (
	"math"
	"time"
)

// Millis converts d to milliseconds rounded to 3 decimals.
func Millis(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e3) / 1e3
}
