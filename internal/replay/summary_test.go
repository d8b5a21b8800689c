package replay

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	recs := []Record{
		{At: 0},
		{At: 0, Line: "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"},
		{At: 10 * time.Millisecond, Line: "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{At: 20 * time.Millisecond, Line: "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*00"},
		{At: 30 * time.Millisecond, Line: "$PAIR002,3*27"},
		{At: 5 * time.Second},
		{At: 5*time.Second + 2*time.Second, Line: "$GPGSV,2,1,08,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45*75"},
	}

	s := Summarize(recs)
	if s.Segments != 2 {
		t.Fatalf("segments=%d want 2", s.Segments)
	}
	if s.Sentences != 5 {
		t.Fatalf("sentences=%d want 5", s.Sentences)
	}
	if s.BadChecksum != 1 {
		t.Fatalf("bad_checksum=%d want 1", s.BadChecksum)
	}
	if s.Unknown != 1 {
		t.Fatalf("unknown=%d want 1", s.Unknown)
	}
	if s.MaxDuration != 2*time.Second {
		t.Fatalf("max_duration=%s want 2s", s.MaxDuration)
	}
	want := map[string]int{"GGA": 1, "RMC": 1, "GSV": 1, "PAIR002": 1}
	for k, v := range want {
		if s.TypeCounts[k] != v {
			t.Fatalf("type_counts[%s]=%d want %d (all=%v)", k, s.TypeCounts[k], v, s.TypeCounts)
		}
	}
}

func TestSummarize_NoStartMarker(t *testing.T) {
	s := Summarize([]Record{{At: 0, Line: "$PAIR002,3*27"}})
	if s.Segments != 1 || s.Sentences != 1 {
		t.Fatalf("summary=%+v", s)
	}
	if len(Summarize(nil).TypeCounts) != 0 {
		t.Fatalf("expected empty summary")
	}
}
