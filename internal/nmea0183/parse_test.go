package nmea0183

import (
	"errors"
	"testing"
)

func TestParseDecimalNano(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"", 0},
		{"1", 1000000000},
		{"1.5", 1500000000},
		{"-2.25", -2250000000},
		{"0.000000001", 1},
		{"123.456789012", 123456789012},
		{".5", 500000000},
		{"7.", 7000000000},
	}
	for _, tc := range cases {
		got, err := ParseDecimalNano(tc.in)
		if err != nil {
			t.Fatalf("ParseDecimalNano(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDecimalNano(%q)=%d want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDecimalNano_RejectsNonDigits(t *testing.T) {
	for _, in := range []string{"1a", "a1", "1.2.3", "1,5", "--1", "1.-5", " 1"} {
		_, err := ParseDecimalNano(in)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("ParseDecimalNano(%q) err=%v want ErrMalformed", in, err)
		}
	}
}

func TestParseDecimalScaled(t *testing.T) {
	milli, err := ParseDecimalMilli("545.4")
	if err != nil {
		t.Fatalf("ParseDecimalMilli error: %v", err)
	}
	if milli != 545400 {
		t.Fatalf("milli=%d want 545400", milli)
	}

	// Truncation is toward zero for negative values.
	milli, err = ParseDecimalMilli("-0.0009")
	if err != nil {
		t.Fatalf("ParseDecimalMilli error: %v", err)
	}
	if milli != 0 {
		t.Fatalf("milli=%d want 0", milli)
	}

	micro, err := ParseDecimalMicro("-1.2345678")
	if err != nil {
		t.Fatalf("ParseDecimalMicro error: %v", err)
	}
	if micro != -1234567 {
		t.Fatalf("micro=%d want -1234567", micro)
	}
}

func TestParseInteger(t *testing.T) {
	cases := []struct {
		in   string
		base int
		want int32
	}{
		{"42", 10, 42},
		{"-7", 10, -7},
		{"ff", 16, 255},
		{"6A", 16, 0x6A},
		{"", 10, 0},
	}
	for _, tc := range cases {
		got, err := ParseInteger(tc.in, tc.base)
		if err != nil {
			t.Fatalf("ParseInteger(%q, %d) error: %v", tc.in, tc.base, err)
		}
		if got != tc.want {
			t.Fatalf("ParseInteger(%q, %d)=%d want %d", tc.in, tc.base, got, tc.want)
		}
	}

	for _, in := range []string{"4x", "1.0", "99999999999"} {
		if _, err := ParseInteger(in, 10); !errors.Is(err, ErrMalformed) {
			t.Fatalf("ParseInteger(%q) err=%v want ErrMalformed", in, err)
		}
	}
}
