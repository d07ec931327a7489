package gitfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseBool interprets a config value using git's boolean spellings.
// True is "true", "yes", "on" or "1"; false is "false", "no", "off", "0"
// or the empty string. Matching is case-insensitive.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", raw)
}

// ParseInt64 interprets a config value as a 64-bit integer, honouring
// git's optional k/m/g scale suffixes (multiples of 2^10, 2^20, 2^30).
func ParseInt64(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty integer value")
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value %q", raw)
	}
	if mult != 1 && (n > math.MaxInt64/mult || n < math.MinInt64/mult) {
		return 0, fmt.Errorf("integer value %q out of range", raw)
	}
	return n * mult, nil
}

// ParseInt32 is ParseInt64 restricted to the 32-bit range.
func ParseInt32(raw string) (int32, error) {
	n, err := ParseInt64(raw)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, fmt.Errorf("integer value %q out of range for int32", raw)
	}
	return int32(n), nil
}

// encodeValue renders a value for a "name = value" line, quoting and
// escaping whenever the bare text would not survive a round trip.
func encodeValue(v string) string {
	if v == "" {
		return `""`
	}
	if !strings.ContainsAny(v, "#;\"\\\n\t") && v == strings.TrimSpace(v) {
		return v
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
