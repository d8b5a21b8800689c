package nmea0183

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	nanoInMicro = 1000
	nanoInMilli = 1000000
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseDecimalNano parses "[-]digits[.digits]" into units of 1e-9.
// There is no overflow check beyond the range of int64.
func ParseDecimalNano(s string) (int64, error) {
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	decimal := strings.IndexByte(s, '.')
	if decimal < 0 {
		decimal = len(s)
	}

	var v int64
	increment := int64(1000000000)
	for pos := decimal - 1; pos >= 0; pos-- {
		if !isDigit(s[pos]) {
			return 0, fmt.Errorf("decimal %q: %w", s, ErrMalformed)
		}
		v += int64(s[pos]-'0') * increment
		increment *= 10
	}

	increment = 100000000
	for pos := decimal + 1; pos < len(s); pos++ {
		if !isDigit(s[pos]) {
			return 0, fmt.Errorf("decimal %q: %w", s, ErrMalformed)
		}
		v += int64(s[pos]-'0') * increment
		increment /= 10
	}

	if negative {
		v = -v
	}
	return v, nil
}

// ParseDecimalMicro is ParseDecimalNano scaled to 1e-6, truncated toward zero.
func ParseDecimalMicro(s string) (int64, error) {
	v, err := ParseDecimalNano(s)
	if err != nil {
		return 0, err
	}
	return v / nanoInMicro, nil
}

// ParseDecimalMilli is ParseDecimalNano scaled to 1e-3, truncated toward zero.
func ParseDecimalMilli(s string) (int64, error) {
	v, err := ParseDecimalNano(s)
	if err != nil {
		return 0, err
	}
	return v / nanoInMilli, nil
}

// ParseInteger converts the whole of s in the given base. An empty field
// reads as zero, which is how receivers leave unknown values blank.
func ParseInteger(s string, base int) (int32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("integer %q: %w", s, ErrMalformed)
	}
	return int32(v), nil
}
