package nmea0183

import (
	"fmt"
	"strings"
)

const (
	picoDegreesInDegree     = 1000000000000
	picoDegreesInMinute     = picoDegreesInDegree / 60
	picoDegreesInNanoDegree = 1000

	// nanoKnotsInMMS is the number of nano knots in one mm/s.
	nanoKnotsInMMS = 1943840
)

// ParseCoordinate converts an unsigned ddmm.mmmm (or dddmm.mmmm) angle to
// nanodegrees. The hemisphere sign is applied by the caller.
func ParseCoordinate(ddmm string) (int64, error) {
	decimal := strings.IndexByte(ddmm, '.')
	if decimal < 1 {
		return 0, fmt.Errorf("coordinate %q: %w", ddmm, ErrMalformed)
	}
	// Minutes must be below 60.
	if decimal > 1 && ddmm[decimal-2] > '5' {
		return 0, fmt.Errorf("coordinate %q: minutes out of range: %w", ddmm, ErrMalformed)
	}

	var pico uint64
	increment := uint64(picoDegreesInMinute / 10)
	for pos := decimal + 1; pos < len(ddmm); pos++ {
		if !isDigit(ddmm[pos]) {
			return 0, fmt.Errorf("coordinate %q: %w", ddmm, ErrMalformed)
		}
		pico += uint64(ddmm[pos]-'0') * increment
		increment /= 10
	}

	increment = picoDegreesInMinute
	for pos := decimal - 1; pos >= 0; pos-- {
		// Two minute digits, then degrees.
		if decimal-pos == 3 {
			increment = picoDegreesInDegree
		}
		if !isDigit(ddmm[pos]) {
			return 0, fmt.Errorf("coordinate %q: %w", ddmm, ErrMalformed)
		}
		pico += uint64(ddmm[pos]-'0') * increment
		increment *= 10
	}

	return int64(pico / picoDegreesInNanoDegree), nil
}

// KnotsToMMS converts a decimal speed in knots to millimeters per second.
func KnotsToMMS(knots string) (int64, error) {
	nano, err := ParseDecimalNano(knots)
	if err != nil {
		return 0, err
	}
	return nano / nanoKnotsInMMS, nil
}

// ParseHHMMSS decodes hhmmss[.sss] into the time of day fields of t.
// t is only written on success.
func ParseHHMMSS(hhmmss string, t *Time) error {
	if len(hhmmss) < 6 {
		return fmt.Errorf("time %q: %w", hhmmss, ErrMalformed)
	}
	hour, err := ParseInteger(hhmmss[0:2], 10)
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("time %q: hour: %w", hhmmss, ErrMalformed)
	}
	minute, err := ParseInteger(hhmmss[2:4], 10)
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("time %q: minute: %w", hhmmss, ErrMalformed)
	}
	ms, err := ParseDecimalMilli(hhmmss[4:])
	if err != nil || ms < 0 || ms > 59999 {
		return fmt.Errorf("time %q: second: %w", hhmmss, ErrMalformed)
	}

	t.Hour = uint8(hour)
	t.Minute = uint8(minute)
	t.Millisecond = uint16(ms)
	return nil
}

// ParseDDMMYY decodes a ddmmyy date into the date fields of t.
// t is only written on success.
func ParseDDMMYY(ddmmyy string, t *Time) error {
	if len(ddmmyy) != 6 {
		return fmt.Errorf("date %q: %w", ddmmyy, ErrMalformed)
	}
	day, err := ParseInteger(ddmmyy[0:2], 10)
	if err != nil || day < 1 || day > 31 {
		return fmt.Errorf("date %q: day: %w", ddmmyy, ErrMalformed)
	}
	month, err := ParseInteger(ddmmyy[2:4], 10)
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("date %q: month: %w", ddmmyy, ErrMalformed)
	}
	year, err := ParseInteger(ddmmyy[4:6], 10)
	if err != nil || year < 0 || year > 99 {
		return fmt.Errorf("date %q: year: %w", ddmmyy, ErrMalformed)
	}

	t.MonthDay = uint8(day)
	t.Month = uint8(month)
	t.CenturyYear = uint8(year)
	return nil
}
