package internals

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var durationRe = regexp.MustCompile(`(?i)^(?:(\d+)y)?(?:(\d+)mo)?(?:(\d+)w)?(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
var sizeRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d*)?)([KMGTP]?)I?B?$`)

// ParseDuration parses strings like "1d2h3m4s" in the rigid order
// y, mo, w, d, h, m, s and returns the duration in nanoseconds. Returns an
// error if the string matches none of the fields or any one is malformed.
func ParseDuration(s string) (int64, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time format, must be in order y, mo, w, d, h, m, s: %q", s)
	}
	anyMatched := false
	for _, g := range m[1:] {
		if g != "" {
			anyMatched = true
			break
		}
	}
	if !anyMatched {
		return 0, fmt.Errorf("invalid time format, must be in order y, mo, w, d, h, m, s: %q", s)
	}

	field := func(i int) int64 {
		if m[i] == "" {
			return 0
		}
		v, _ := strconv.ParseInt(m[i], 10, 64)
		return v
	}

	years, months, weeks, days, hours, minutes, seconds := field(1), field(2), field(3), field(4), field(5), field(6), field(7)
	total := years*31536000 + months*2592000 + weeks*604800 + days*86400 + hours*3600 + minutes*60 + seconds
	return total * 1_000_000_000, nil
}

// ParseSize parses strings like "10K", "20MB", "1Gi", "500" (bytes when no
// suffix is given) and returns the size in bytes.
func ParseSize(s string) (int64, error) {
	m := sizeRe.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return 0, fmt.Errorf("invalid size format, expected a number with an optional K/M/G/T/P suffix: %q", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	multiplier := map[string]float64{
		"":  1,
		"K": 1024,
		"M": 1024 * 1024,
		"G": 1024 * 1024 * 1024,
		"T": 1024 * 1024 * 1024 * 1024,
		"P": 1024 * 1024 * 1024 * 1024 * 1024,
	}[m[2]]
	return int64(value * multiplier), nil
}

// HumanSize renders a byte count the way configuration debug dumps and log
// lines do, via go-humanize's binary (IEC) formatting.
func HumanSize(size int64) string {
	if size < 0 {
		return "-" + humanize.IBytes(uint64(-size))
	}
	return humanize.IBytes(uint64(size))
}

// HumanTime renders a duration given in nanoseconds as a compact string
// such as "1d2h3m", following the same rigid y/mo/w/d/h/m/s ordering that
// ParseDuration accepts, omitting every zero-valued field.
func HumanTime(nanoseconds int64, maxChunks int) string {
	if nanoseconds < 0 {
		nanoseconds = 0
	}
	seconds := nanoseconds / 1_000_000_000

	intervals := []struct {
		name  string
		count int64
	}{
		{"y", 31536000}, {"mo", 2592000}, {"w", 604800},
		{"d", 86400}, {"h", 3600}, {"m", 60}, {"s", 1},
	}

	var b strings.Builder
	chunks := 0
	for _, iv := range intervals {
		value := seconds / iv.count
		seconds = seconds % iv.count
		if maxChunks > 0 && chunks+1 >= maxChunks && value == 0 && seconds > 0 {
			// last admissible chunk: round the remainder into it
			value = (seconds + iv.count/2) / iv.count
			if value > 0 {
				fmt.Fprintf(&b, "%d%s", value, iv.name)
				chunks++
			}
			break
		}
		if value > 0 {
			fmt.Fprintf(&b, "%d%s", value, iv.name)
			chunks++
		}
		if maxChunks > 0 && chunks >= maxChunks {
			break
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
