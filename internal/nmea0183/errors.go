package nmea0183

import "errors"

var (
	// ErrMalformed is returned for bad digits, missing decimal points,
	// short sentences, out of range fields and checksum mismatches.
	ErrMalformed = errors.New("nmea0183: malformed input")
	// ErrNoSpace is returned when a destination buffer is too small.
	ErrNoSpace = errors.New("nmea0183: no space")
)
