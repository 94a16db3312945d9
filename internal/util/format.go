package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders bytes with a 1024 base and up to two decimals,
// dropping trailing zeros: 0 -> "0 Bytes", 1536 -> "1.5 KB".
// Sizes beyond the GB range stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := 0
	scale := int64(1)
	for i < len(sizeUnits)-1 && bytes >= scale*KiB {
		scale *= KiB
		i++
	}
	v := math.Round(float64(bytes)/float64(scale)*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Timeify converts seconds to "HH:MM:SS" format. Negative input clamps to zero.
func Timeify(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// ETA estimates the remaining time of a job that is fraction done after
// running for elapsed. It returns "00:00:00" until there is enough signal.
func ETA(fraction float64, elapsed time.Duration) string {
	if fraction <= 0 || fraction >= 1 || elapsed <= 0 {
		return Timeify(0)
	}
	remaining := elapsed.Seconds() * (1 - fraction) / fraction
	return Timeify(int(math.Floor(remaining)))
}
