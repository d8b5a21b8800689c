package nmea0183

import (
	"fmt"
	"math"
)

// GSVHeader is the leading part of a Satellites in View sentence.
type GSVHeader struct {
	System           System
	NumberOfMessages uint16
	MessageNumber    uint16
	NumberOfSVs      uint16
}

func systemFromMessageID(id string) (System, error) {
	if len(id) < 3 {
		return 0, fmt.Errorf("gsv: message id %q: %w", id, ErrMalformed)
	}
	switch id[2] {
	case 'A':
		return SystemGalileo, nil
	case 'B':
		return SystemBeiDou, nil
	case 'P':
		return SystemGPS, nil
	case 'L':
		return SystemGLONASS, nil
	case 'Q':
		return SystemQZSS, nil
	default:
		return 0, fmt.Errorf("gsv: talker in %q: %w", id, ErrMalformed)
	}
}

func parseUint16(s, what string) (uint16, error) {
	v, err := ParseInteger(s, 10)
	if err != nil || v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("gsv: %s %q: %w", what, s, ErrMalformed)
	}
	return uint16(v), nil
}

// ParseGSVHeader decodes the first four tokens of a GSV sentence.
//
//	0: $--GSV   1: number of messages   2: message number   3: satellites in view
func ParseGSVHeader(tokens []string) (GSVHeader, error) {
	if len(tokens) < gsvHeaderTokens {
		return GSVHeader{}, fmt.Errorf("gsv: %d tokens: %w", len(tokens), ErrMalformed)
	}
	sys, err := systemFromMessageID(tokens[0])
	if err != nil {
		return GSVHeader{}, err
	}
	var h GSVHeader
	h.System = sys
	if h.NumberOfMessages, err = parseUint16(tokens[1], "number of messages"); err != nil {
		return GSVHeader{}, err
	}
	if h.MessageNumber, err = parseUint16(tokens[2], "message number"); err != nil {
		return GSVHeader{}, err
	}
	if h.NumberOfSVs, err = parseUint16(tokens[3], "number of svs"); err != nil {
		return GSVHeader{}, err
	}
	return h, nil
}

// normalizeSatellite converts the NMEA satellite id to a system relative PRN.
func normalizeSatellite(sv *Satellite) {
	switch sv.System {
	case SystemGPS:
		if sv.PRN > 32 {
			sv.System = SystemSBAS
			sv.PRN += 87
		}
	case SystemGLONASS:
		sv.PRN -= 64
	case SystemBeiDou:
		sv.PRN -= 100
	}
}

// ParseGSVSatellites decodes the satellite blocks following the header into
// dst and returns how many were written. Each block is PRN, elevation,
// azimuth and SNR; a trailing incomplete block (such as the NMEA 4.10
// signal id) is ignored.
func ParseGSVSatellites(tokens []string, dst []Satellite) (int, error) {
	if len(tokens) < gsvHeaderTokens {
		return 0, fmt.Errorf("gsv: %d tokens: %w", len(tokens), ErrMalformed)
	}
	sys, err := systemFromMessageID(tokens[0])
	if err != nil {
		return 0, err
	}

	count := (len(tokens) - gsvHeaderTokens) / gsvTokensPerSV
	if len(dst) < count {
		return 0, fmt.Errorf("gsv: %d satellites in %d slots: %w", count, len(dst), ErrNoSpace)
	}

	for i := 0; i < count; i++ {
		f := tokens[gsvHeaderTokens+i*gsvTokensPerSV:]
		var sv Satellite
		sv.System = sys

		prn, err := parseUint16(f[0], "prn")
		if err != nil {
			return 0, err
		}
		sv.PRN = prn

		elevation, err := ParseInteger(f[1], 10)
		if err != nil || elevation < 0 || elevation > 90 {
			return 0, fmt.Errorf("gsv: elevation %q: %w", f[1], ErrMalformed)
		}
		sv.Elevation = uint8(elevation)

		azimuth, err := ParseInteger(f[2], 10)
		if err != nil || azimuth < 0 || azimuth > 359 {
			return 0, fmt.Errorf("gsv: azimuth %q: %w", f[2], ErrMalformed)
		}
		sv.Azimuth = uint16(azimuth)

		if f[3] != "" {
			snr, err := ParseInteger(f[3], 10)
			if err != nil || snr < 0 || snr > 99 {
				return 0, fmt.Errorf("gsv: snr %q: %w", f[3], ErrMalformed)
			}
			sv.SNR = uint8(snr)
			sv.IsTracked = true
		}

		normalizeSatellite(&sv)
		dst[i] = sv
	}
	return count, nil
}
