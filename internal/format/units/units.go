// Package units renders sizes, rates and ratios for display.
package units

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// RatioInfinite is shown when data was uploaded but nothing downloaded.
	RatioInfinite = "∞"
	// RatioUnavailable is shown when nothing was transferred either way.
	RatioUnavailable = "N/A"
)

// Bytes formats n using binary prefixes. Negative values are unknown.
func Bytes(n int64) string {
	if n < 0 {
		return "?"
	}
	return humanize.IBytes(uint64(n))
}

// Speed formats a per-second byte rate.
func Speed(bytesPerSecond int64) string {
	if bytesPerSecond <= 0 {
		return "0 B/s"
	}
	return Bytes(bytesPerSecond) + "/s"
}

// Ratio formats uploaded/downloaded without ever dividing by zero.
func Ratio(uploaded, downloaded int64) string {
	if downloaded <= 0 {
		if uploaded > 0 {
			return RatioInfinite
		}
		return RatioUnavailable
	}
	return fmt.Sprintf("%.2f", float64(uploaded)/float64(downloaded))
}

// DaemonRatio formats a ratio as reported by the daemon, which uses negative
// values for "not available" and "infinite".
func DaemonRatio(r float64) string {
	switch {
	case r == -2 || math.IsInf(r, 1):
		return RatioInfinite
	case r < 0 || math.IsNaN(r):
		return RatioUnavailable
	default:
		return fmt.Sprintf("%.2f", r)
	}
}

// Percent formats a 0..1 fraction.
func Percent(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// ETA formats remaining seconds; negative values mean unknown or done.
func ETA(seconds int64) string {
	if seconds < 0 {
		return "-"
	}
	return (time.Duration(seconds) * time.Second).String()
}

// Elapsed formats an active-seconds counter the way humans read uptime.
func Elapsed(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	return strings.TrimSpace(humanize.RelTime(time.Unix(0, 0), time.Unix(seconds, 0), "", ""))
}
