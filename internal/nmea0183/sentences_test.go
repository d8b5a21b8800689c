package nmea0183

import (
	"errors"
	"testing"
)

// body returns the tokens of a checksummed sample without the checksum.
func body(line string) []string {
	tokens := Split(line)
	return tokens[:len(tokens)-1]
}

func TestParseRMC(t *testing.T) {
	var fix Fix
	res, err := ParseRMC(body(sampleRMC), &fix)
	if err != nil {
		t.Fatalf("ParseRMC error: %v", err)
	}
	if res != Updated {
		t.Fatalf("result=%s want updated", res)
	}

	want := Time{Hour: 12, Minute: 35, Millisecond: 19000, MonthDay: 23, Month: 3, CenturyYear: 94}
	if fix.UTC != want {
		t.Fatalf("utc=%+v want %+v", fix.UTC, want)
	}
	if fix.Nav.Latitude != 48117299999 {
		t.Fatalf("lat=%d", fix.Nav.Latitude)
	}
	if fix.Nav.Longitude != 11516666666 {
		t.Fatalf("lon=%d", fix.Nav.Longitude)
	}
	if fix.Nav.Speed != 11523 {
		t.Fatalf("speed=%d want 11523", fix.Nav.Speed)
	}
	if fix.Nav.Bearing != 84400 {
		t.Fatalf("bearing=%d want 84400", fix.Nav.Bearing)
	}
}

func TestParseRMC_SouthWestNegates(t *testing.T) {
	var fix Fix
	tokens := []string{"$GNRMC", "000001.00", "A", "3723.2475", "S", "12158.3416", "W", "0", "359.999", "010100"}
	if _, err := ParseRMC(tokens, &fix); err != nil {
		t.Fatalf("ParseRMC error: %v", err)
	}
	if fix.Nav.Latitude != -37387458333 {
		t.Fatalf("lat=%d", fix.Nav.Latitude)
	}
	if fix.Nav.Longitude != -121972359999 {
		t.Fatalf("lon=%d", fix.Nav.Longitude)
	}
	if fix.Nav.Bearing != 359999 {
		t.Fatalf("bearing=%d", fix.Nav.Bearing)
	}
}

func TestParseRMC_VoidLeavesFixUntouched(t *testing.T) {
	fix := Fix{Nav: NavData{Latitude: 1, Speed: 2}, UTC: Time{Hour: 3}}
	before := fix
	tokens := []string{"$GPRMC", "123519", "V", "", "", "", "", "", "", ""}
	res, err := ParseRMC(tokens, &fix)
	if err != nil {
		t.Fatalf("ParseRMC error: %v", err)
	}
	if res != NoUpdate {
		t.Fatalf("result=%s want no-update", res)
	}
	if fix != before {
		t.Fatalf("fix modified: %+v", fix)
	}
}

func TestParseRMC_FailureLeavesFixUntouched(t *testing.T) {
	base := body(sampleRMC)
	cases := map[string]func([]string){
		"hemisphere": func(f []string) { f[4] = "X" },
		"time":       func(f []string) { f[1] = "250000" },
		"latitude":   func(f []string) { f[3] = "4807" },
		"speed":      func(f []string) { f[7] = "-1" },
		"bearing":    func(f []string) { f[8] = "360.0" },
		"date":       func(f []string) { f[9] = "320394" },
	}
	for name, mutate := range cases {
		tokens := append([]string(nil), base...)
		mutate(tokens)
		fix := Fix{Nav: NavData{Latitude: 7}}
		before := fix
		res, err := ParseRMC(tokens, &fix)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: err=%v want ErrMalformed", name, err)
		}
		if res != Failed {
			t.Fatalf("%s: result=%s want failed", name, res)
		}
		if fix != before {
			t.Fatalf("%s: fix modified: %+v", name, fix)
		}
	}

	var fix Fix
	if _, err := ParseRMC(base[:9], &fix); !errors.Is(err, ErrMalformed) {
		t.Fatalf("short sentence err=%v", err)
	}
}

func TestParseGGA(t *testing.T) {
	var fix Fix
	res, err := ParseGGA(body(sampleGGA), &fix)
	if err != nil {
		t.Fatalf("ParseGGA error: %v", err)
	}
	if res != Updated {
		t.Fatalf("result=%s want updated", res)
	}
	if fix.Info.FixQuality != FixQualityGNSSSPS || fix.Info.FixStatus != FixStatusGNSSFix {
		t.Fatalf("info=%+v", fix.Info)
	}
	if fix.Info.SatellitesCount != 8 {
		t.Fatalf("sats=%d", fix.Info.SatellitesCount)
	}
	if fix.Info.HDOP != 900 {
		t.Fatalf("hdop=%d", fix.Info.HDOP)
	}
	if fix.Nav.Altitude != 545400 {
		t.Fatalf("alt=%d", fix.Nav.Altitude)
	}
	if fix.Nav.GeoidSeparation != 46900 {
		t.Fatalf("geoid=%d", fix.Nav.GeoidSeparation)
	}
}

func TestParseGGA_NoFix(t *testing.T) {
	fix := Fix{
		Nav:  NavData{Altitude: 1000, GeoidSeparation: 20},
		Info: Info{SatellitesCount: 9, HDOP: 800, FixStatus: FixStatusGNSSFix, FixQuality: FixQualityGNSSSPS},
	}
	tokens := []string{"$GPGGA", "123519", "", "", "", "", "0", "", "", "", "", "", "", ""}
	res, err := ParseGGA(tokens, &fix)
	if err != nil {
		t.Fatalf("ParseGGA error: %v", err)
	}
	if res != NoUpdate {
		t.Fatalf("result=%s want no-update", res)
	}
	if fix.Info.FixStatus != FixStatusNoFix || fix.Info.FixQuality != FixQualityInvalid {
		t.Fatalf("info=%+v", fix.Info)
	}
	if fix.Info.SatellitesCount != 9 || fix.Info.HDOP != 800 || fix.Nav.Altitude != 1000 || fix.Nav.GeoidSeparation != 20 {
		t.Fatalf("expected untouched fields, got %+v", fix)
	}
}

func TestParseGGA_Rejects(t *testing.T) {
	base := body(sampleGGA)
	cases := map[string]func([]string){
		"quality empty":  func(f []string) { f[6] = "" },
		"quality 7":      func(f []string) { f[6] = "7" },
		"quality 2 char": func(f []string) { f[6] = "11" },
		"sats":           func(f []string) { f[7] = "65536" },
		"hdop":           func(f []string) { f[8] = "-1.0" },
		"altitude":       func(f []string) { f[9] = "3000000" },
		"geoid":          func(f []string) { f[11] = "4x" },
	}
	for name, mutate := range cases {
		tokens := append([]string(nil), base...)
		mutate(tokens)
		var fix Fix
		if _, err := ParseGGA(tokens, &fix); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: err=%v want ErrMalformed", name, err)
		}
		if fix != (Fix{}) {
			t.Fatalf("%s: fix modified: %+v", name, fix)
		}
	}

	var fix Fix
	if _, err := ParseGGA(base[:11], &fix); !errors.Is(err, ErrMalformed) {
		t.Fatalf("short sentence err=%v", err)
	}
}

func TestFixStatusFromQuality(t *testing.T) {
	want := map[FixQuality]FixStatus{
		FixQualityInvalid:   FixStatusNoFix,
		FixQualityGNSSSPS:   FixStatusGNSSFix,
		FixQualityDGNSS:     FixStatusDGNSSFix,
		FixQualityGNSSPPS:   FixStatusGNSSFix,
		FixQualityRTK:       FixStatusDGNSSFix,
		FixQualityFloatRTK:  FixStatusDGNSSFix,
		FixQualityEstimated: FixStatusEstimatedFix,
	}
	for q, s := range want {
		if got := FixStatusFromQuality(q); got != s {
			t.Fatalf("FixStatusFromQuality(%s)=%s want %s", q, got, s)
		}
	}
}
