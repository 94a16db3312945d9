// Package util holds small stateless helpers shared by the Cryptbook client:
// size constants, human-readable formatting, file type lookup, random
// identifiers and content fingerprints.
package util

// Size constants for byte calculations
const (
	KiB = 1 << 10 // 1024
	MiB = 1 << 20 // 1,048,576
	GiB = 1 << 30 // 1,073,741,824
)
