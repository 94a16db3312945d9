// Package strength scores passwords and encryption settings on a 0-100
// scale and maps scores to labels. All functions are pure.
package strength

import (
	"unicode/utf8"
)

// MaxScore is the upper bound of every score.
const MaxScore = 100

// PasswordScore rates p. Length earns 25 points from 8 characters and 15
// more from 12; each present class (lowercase, uppercase, digit, anything
// else) earns 15. Length is counted in runes. The sum is capped at MaxScore
// and an empty password scores 0.
func PasswordScore(p string) int {
	if p == "" {
		return 0
	}

	score := 0
	n := utf8.RuneCountInString(p)
	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 15
	}

	var lower, upper, digit, other bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, present := range []bool{lower, upper, digit, other} {
		if present {
			score += 15
		}
	}

	return min(score, MaxScore)
}
