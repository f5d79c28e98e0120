// Package capacity computes display figures for event capacity: spots
// remaining, fill percentage, and fullness. All functions are pure.
package capacity

// Unlimited is the spots value meaning no configured capacity.
const Unlimited = 0

// SpotsRemaining returns the number of open spots, clamped at zero.
// Unlimited events report zero because there is no meaningful remainder.
func SpotsRemaining(spots, attendeeCount int) int {
	if spots <= Unlimited {
		return 0
	}
	remaining := spots - attendeeCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FillPercent returns how full the event is, clamped to [0,100].
// Unlimited events always report zero.
func FillPercent(spots, attendeeCount int) int {
	if spots <= Unlimited {
		return 0
	}
	if attendeeCount <= 0 {
		return 0
	}
	percent := attendeeCount * 100 / spots
	if percent > 100 {
		return 100
	}
	return percent
}

// IsFull reports whether registration should be presented as closed for
// capacity reasons. Unlimited events are never full.
func IsFull(spots, attendeeCount int) bool {
	if spots <= Unlimited {
		return false
	}
	return attendeeCount >= spots
}
