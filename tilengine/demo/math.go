package demo

import "math"

func sincos(degrees float64) (float64, float64) {
	return math.Sincos(degrees * math.Pi / 180)
}
