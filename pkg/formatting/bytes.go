// Package formatting parses loosely formatted values: byte sizes from
// configuration and JSON objects embedded in completion output.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

// Base-1024 byte size units. The IEC spellings ("MiB") are accepted too.
var byteUnits = []struct {
	name  string
	shift uint
}{
	{"KB", 10}, {"MB", 20}, {"GB", 30}, {"TB", 40},
}

// ParseBytes parses sizes such as "20MB", "512 kb", "1.5GiB" or "1024".
// A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	num := strings.TrimRightFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if num == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}
	unit := strings.Replace(strings.TrimSpace(s[len(num):]), "IB", "B", 1)

	value, err := strconv.ParseFloat(num, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	switch unit {
	case "", "B":
		return int64(value), nil
	}
	for _, u := range byteUnits {
		if unit == u.name {
			return int64(value * float64(int64(1)<<u.shift)), nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}

// FormatBytes renders n in the largest unit that keeps the value at or above
// one, with one decimal place.
func FormatBytes(n int64) string {
	for i := len(byteUnits) - 1; i >= 0; i-- {
		if size := int64(1) << byteUnits[i].shift; n >= size {
			return strconv.FormatFloat(float64(n)/float64(size), 'f', 1, 64) + " " + byteUnits[i].name
		}
	}
	return strconv.FormatInt(n, 10) + " B"
}
