// Package formatting parses and renders human-readable byte sizes.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const unitBase = 1024

var units = []string{"B", "KB", "MB", "GB", "TB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// ByteSize is a byte count that decodes from strings such as "1MB" and
// "512 kb". It satisfies encoding.TextUnmarshaler so TOML configs can carry
// sizes directly.
type ByteSize int64

// String renders the size with one decimal place of precision.
func (b ByteSize) String() string {
	return FormatBytes(int64(b), 1)
}

// MarshalText encodes the size in its human-readable form.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(FormatBytes(int64(b), 0)), nil
}

// UnmarshalText decodes a human-readable size.
func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := ParseBytes(string(text))
	if err != nil {
		return err
	}
	*b = ByteSize(n)
	return nil
}

// FormatBytes renders n using base-1024 units. Trailing zero decimals are
// trimmed, so 1024 renders as "1 KB" at any precision.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	i := min(int(math.Log(float64(n))/math.Log(unitBase)), len(units)-1)

	size := float64(n) / math.Pow(unitBase, float64(i))
	formatted := strconv.FormatFloat(size, 'f', precision, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	}

	return formatted + " " + units[i]
}

// ParseBytes converts a size such as "50MB" into a byte count. A bare number
// is a count of bytes. Units are case-insensitive and may be separated from
// the number by whitespace.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	exp := 0
	if unit := strings.ToUpper(m[2]); unit != "" {
		exp = -1
		for i, u := range units {
			if u == unit {
				exp = i
				break
			}
		}
		if exp < 0 {
			return 0, fmt.Errorf("unknown byte size unit %q", m[2])
		}
	}

	return int64(value * math.Pow(unitBase, float64(exp))), nil
}
