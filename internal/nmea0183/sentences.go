package nmea0183

import (
	"fmt"
	"math"
	"strings"
)

const (
	rmcMinTokens       = 10
	ggaMinTokens       = 12
	gsvHeaderTokens    = 4
	gsvTokensPerSV     = 4
	maxBearingMilliDeg = 359999
)

// ParseRMC decodes a Recommended Minimum sentence into fix.
//
//	0: $--RMC   1: time   2: status   3: lat   4: N/S   5: lon   6: E/W
//	7: speed (knots)   8: course (deg)   9: date (ddmmyy)
//
// A void status ('V') is not an error; it yields NoUpdate and leaves fix as is.
func ParseRMC(tokens []string, fix *Fix) (Result, error) {
	if len(tokens) < rmcMinTokens {
		return Failed, fmt.Errorf("rmc: %d tokens: %w", len(tokens), ErrMalformed)
	}
	if strings.HasPrefix(tokens[2], "V") {
		return NoUpdate, nil
	}

	ns, ew := tokens[4], tokens[6]
	if (ns != "N" && ns != "S") || (ew != "E" && ew != "W") {
		return Failed, fmt.Errorf("rmc: hemisphere %q/%q: %w", ns, ew, ErrMalformed)
	}

	next := *fix
	if err := ParseHHMMSS(tokens[1], &next.UTC); err != nil {
		return Failed, fmt.Errorf("rmc: %w", err)
	}
	lat, err := ParseCoordinate(tokens[3])
	if err != nil {
		return Failed, fmt.Errorf("rmc: latitude: %w", err)
	}
	lon, err := ParseCoordinate(tokens[5])
	if err != nil {
		return Failed, fmt.Errorf("rmc: longitude: %w", err)
	}
	if ns == "S" {
		lat = -lat
	}
	if ew == "W" {
		lon = -lon
	}
	next.Nav.Latitude = lat
	next.Nav.Longitude = lon

	speed, err := KnotsToMMS(tokens[7])
	if err != nil || speed < 0 || speed > math.MaxUint32 {
		return Failed, fmt.Errorf("rmc: speed %q: %w", tokens[7], ErrMalformed)
	}
	next.Nav.Speed = uint32(speed)

	bearing, err := ParseDecimalMilli(tokens[8])
	if err != nil || bearing < 0 || bearing > maxBearingMilliDeg {
		return Failed, fmt.Errorf("rmc: bearing %q: %w", tokens[8], ErrMalformed)
	}
	next.Nav.Bearing = uint32(bearing)

	if err := ParseDDMMYY(tokens[9], &next.UTC); err != nil {
		return Failed, fmt.Errorf("rmc: %w", err)
	}

	*fix = next
	return Updated, nil
}

func parseFixQuality(s string) (FixQuality, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return 0, fmt.Errorf("gga: fix quality %q: %w", s, ErrMalformed)
	}
	return FixQuality(s[0] - '0'), nil
}

// FixStatusFromQuality maps a GGA fix quality to the coarser fix status.
func FixStatusFromQuality(q FixQuality) FixStatus {
	switch q {
	case FixQualityGNSSSPS, FixQualityGNSSPPS:
		return FixStatusGNSSFix
	case FixQualityDGNSS, FixQualityRTK, FixQualityFloatRTK:
		return FixStatusDGNSSFix
	case FixQualityEstimated:
		return FixStatusEstimatedFix
	default:
		return FixStatusNoFix
	}
}

// ParseGGA decodes a Fix Data sentence into fix.
//
//	0: $--GGA   1: time   2: lat   3: N/S   4: lon   5: E/W   6: quality
//	7: satellites   8: HDOP   9: altitude   10: M   11: geoid separation
//
// Without a fix only the quality and status are written and the result is
// NoUpdate.
func ParseGGA(tokens []string, fix *Fix) (Result, error) {
	if len(tokens) < ggaMinTokens {
		return Failed, fmt.Errorf("gga: %d tokens: %w", len(tokens), ErrMalformed)
	}
	quality, err := parseFixQuality(tokens[6])
	if err != nil {
		return Failed, err
	}

	next := *fix
	next.Info.FixQuality = quality
	next.Info.FixStatus = FixStatusFromQuality(quality)
	if next.Info.FixStatus == FixStatusNoFix {
		*fix = next
		return NoUpdate, nil
	}

	sats, err := ParseInteger(tokens[7], 10)
	if err != nil || sats < 0 || sats > math.MaxUint16 {
		return Failed, fmt.Errorf("gga: satellites %q: %w", tokens[7], ErrMalformed)
	}
	next.Info.SatellitesCount = uint16(sats)

	hdop, err := ParseDecimalMilli(tokens[8])
	if err != nil || hdop < 0 || hdop > math.MaxUint32 {
		return Failed, fmt.Errorf("gga: hdop %q: %w", tokens[8], ErrMalformed)
	}
	next.Info.HDOP = uint32(hdop)

	alt, err := ParseDecimalMilli(tokens[9])
	if err != nil || alt < math.MinInt32 || alt > math.MaxInt32 {
		return Failed, fmt.Errorf("gga: altitude %q: %w", tokens[9], ErrMalformed)
	}
	next.Nav.Altitude = int32(alt)

	sep, err := ParseDecimalMilli(tokens[11])
	if err != nil || sep < math.MinInt32 || sep > math.MaxInt32 {
		return Failed, fmt.Errorf("gga: geoid separation %q: %w", tokens[11], ErrMalformed)
	}
	next.Nav.GeoidSeparation = int32(sep)

	*fix = next
	return Updated, nil
}
