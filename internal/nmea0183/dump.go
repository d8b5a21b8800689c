package nmea0183

import (
	"fmt"
	"strings"
	"time"
)

func (s System) String() string {
	switch s {
	case SystemGPS:
		return "GPS"
	case SystemGLONASS:
		return "GLONASS"
	case SystemGalileo:
		return "GALILEO"
	case SystemBeiDou:
		return "BEIDOU"
	case SystemQZSS:
		return "QZSS"
	case SystemIRNSS:
		return "IRNSS"
	case SystemSBAS:
		return "SBAS"
	case SystemIMES:
		return "IMES"
	default:
		return fmt.Sprintf("System(%d)", uint8(s))
	}
}

func (q FixQuality) String() string {
	switch q {
	case FixQualityInvalid:
		return "INVALID"
	case FixQualityGNSSSPS:
		return "GNSS_SPS"
	case FixQualityDGNSS:
		return "DGNSS"
	case FixQualityGNSSPPS:
		return "GNSS_PPS"
	case FixQualityRTK:
		return "RTK"
	case FixQualityFloatRTK:
		return "FLOAT_RTK"
	case FixQualityEstimated:
		return "ESTIMATED"
	default:
		return fmt.Sprintf("FixQuality(%d)", uint8(q))
	}
}

func (s FixStatus) String() string {
	switch s {
	case FixStatusNoFix:
		return "NO_FIX"
	case FixStatusGNSSFix:
		return "GNSS_FIX"
	case FixStatusDGNSSFix:
		return "DGNSS_FIX"
	case FixStatusEstimatedFix:
		return "ESTIMATED_FIX"
	default:
		return fmt.Sprintf("FixStatus(%d)", uint8(s))
	}
}

func (r Result) String() string {
	switch r {
	case Failed:
		return "failed"
	case NoUpdate:
		return "no-update"
	case Updated:
		return "updated"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// formatFixed renders v scaled by 10^digits without going through floats.
func formatFixed(v int64, digits int) string {
	sign := ""
	u := uint64(v)
	if v < 0 {
		sign = "-"
		u = uint64(-v)
	}
	div := uint64(1)
	for i := 0; i < digits; i++ {
		div *= 10
	}
	return fmt.Sprintf("%s%d.%0*d", sign, u/div, digits, u%div)
}

func (t Time) String() string {
	return fmt.Sprintf("20%02d-%02d-%02d %02d:%02d:%02d.%03d",
		t.CenturyYear, t.Month, t.MonthDay,
		t.Hour, t.Minute, t.Millisecond/1000, t.Millisecond%1000)
}

// ToTime converts t to a time.Time in the 2000s. It reports false when the
// date part has not been set.
func (t Time) ToTime() (time.Time, bool) {
	if t.Month == 0 || t.MonthDay == 0 {
		return time.Time{}, false
	}
	ms := time.Duration(t.Millisecond) * time.Millisecond
	return time.Date(2000+int(t.CenturyYear), time.Month(t.Month), int(t.MonthDay),
		int(t.Hour), int(t.Minute), 0, 0, time.UTC).Add(ms), true
}

func (n NavData) String() string {
	return fmt.Sprintf("lat=%s lon=%s bearing=%s speed=%s alt=%s geoid=%s",
		formatFixed(n.Latitude, 9),
		formatFixed(n.Longitude, 9),
		formatFixed(int64(n.Bearing), 3),
		formatFixed(int64(n.Speed), 3),
		formatFixed(int64(n.Altitude), 3),
		formatFixed(int64(n.GeoidSeparation), 3))
}

func (i Info) String() string {
	return fmt.Sprintf("sats=%d hdop=%s status=%s quality=%s",
		i.SatellitesCount, formatFixed(int64(i.HDOP), 3), i.FixStatus, i.FixQuality)
}

func (f Fix) String() string {
	return fmt.Sprintf("utc=%s %s %s", f.UTC, f.Nav, f.Info)
}

func (sv Satellite) String() string {
	snr := "-"
	if sv.IsTracked {
		snr = fmt.Sprintf("%d", sv.SNR)
	}
	return fmt.Sprintf("%s prn=%d elev=%d az=%d snr=%s", sv.System, sv.PRN, sv.Elevation, sv.Azimuth, snr)
}

// FormatSatellites renders one satellite per line.
func FormatSatellites(sats []Satellite) string {
	var b strings.Builder
	for i, sv := range sats {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sv.String())
	}
	return b.String()
}
