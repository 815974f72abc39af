// Package fixedpoint exposes the float -> {integer, fractional} splitter
// named in spec.md §6 for callers outside the core (e.g. a telemetry
// formatter binding a value for fixed-width display).
package fixedpoint

import "math"

// maxDecimals is the clamp spec.md §6 requires on the decimal count.
const maxDecimals = 9

// Split returns a value's integer part and its fractional part scaled to
// an integer with decimals digits (decimals is clamped to 9).
// fractional = |frac| * 10^decimals.
func Split(value float64, decimals int) (integerPart int64, fractional int64) {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}

	integerPart = int64(value)
	frac := value - float64(integerPart)
	if frac < 0 {
		frac = -frac
	}

	scale := math.Pow(10, float64(decimals))
	fractional = int64(math.Round(frac * scale))
	return integerPart, fractional
}
