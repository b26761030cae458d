package geometry

import "math"

// cmToMM converts host units to millimetres.
const cmToMM = 10.0

// Rounder turns measured millimetre values into report integers. Ties round
// to even.
type Rounder struct {
	Snap     bool
	Interval int // mm; snapping is off when <= 0
}

// SmartRound snaps v to the nearest multiple of Interval when snapping is on,
// otherwise rounds to the nearest integer. SmartRound is idempotent.
func (r Rounder) SmartRound(v float64) int {
	if r.Snap && r.Interval > 0 {
		step := float64(r.Interval)
		return int(math.RoundToEven(v/step) * step)
	}
	return int(math.RoundToEven(v))
}

// ToMillimetres converts a host length to whole millimetres without snapping.
func ToMillimetres(cm float64) int {
	return int(math.RoundToEven(cm * cmToMM))
}

// RoundHalfDegree rounds an angle to the nearest 0.5°.
func RoundHalfDegree(deg float64) float64 {
	return math.RoundToEven(deg*2) / 2
}
