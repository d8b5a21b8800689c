package replay

import (
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"gnssnmea/internal/nmea0183"
)

// Summary describes the contents of a capture log.
type Summary struct {
	Segments    int
	Sentences   int
	BadChecksum int
	// Unknown counts checksum-clean sentences no decoder recognizes.
	Unknown     int
	MaxDuration time.Duration
	TypeCounts  map[string]int
}

// Summarize counts sentences per type. Types are the ones known to go-nmea,
// which covers more than the GGA/RMC/GSV set the session decodes; anything
// else is counted under its full sentence id.
func Summarize(records []Record) Summary {
	s := Summary{TypeCounts: map[string]int{}}
	if len(records) == 0 {
		return s
	}

	origin := time.Duration(0)
	hasLines := false
	segments := 0

	for _, r := range records {
		if r.IsStart() {
			segments++
			origin = r.At
			continue
		}
		hasLines = true

		s.Sentences++
		at := r.At - origin
		if at < 0 {
			at = 0
		}
		if at > s.MaxDuration {
			s.MaxDuration = at
		}

		tokens := nmea0183.Split(r.Line)
		if !nmea0183.Validate(tokens) {
			s.BadChecksum++
			continue
		}
		sent, err := nmea.Parse(r.Line)
		if err != nil {
			s.Unknown++
			s.TypeCounts[strings.TrimPrefix(tokens[0], "$")]++
			continue
		}
		s.TypeCounts[sent.DataType()]++
	}
	if segments == 0 && hasLines {
		segments = 1
	}
	s.Segments = segments

	return s
}
