package nmea0183

import (
	"fmt"
	"strings"
)

// Publisher receives records completed by a Session. The satellite slice
// is the session's buffer and is overwritten by the next GSV cycle.
type Publisher interface {
	PublishFix(fix Fix)
	PublishSatellites(sats []Satellite)
}

// Session holds the cross-sentence state of one receiver.
type Session struct {
	pub Publisher

	fix Fix

	// Time of day in ms of the last decoded GGA and RMC. Zero means unseen,
	// so a fix at exactly 00:00:00.000 is never published.
	ggaUTC uint32
	rmcUTC uint32

	satellites  []Satellite
	satCount    int
	gsvExpected uint16
}

// NewSession returns a session that reassembles GSV sentences into
// satellites. The buffer bounds the number of satellites per cycle.
func NewSession(satellites []Satellite, pub Publisher) *Session {
	return &Session{
		pub:         pub,
		satellites:  satellites,
		gsvExpected: 1,
	}
}

// Fix returns the current fix record.
func (s *Session) Fix() Fix {
	return s.fix
}

func (s *Session) publishFix() {
	if s.ggaUTC == 0 || s.rmcUTC == 0 {
		return
	}
	if s.ggaUTC != s.rmcUTC {
		return
	}
	if s.pub != nil {
		s.pub.PublishFix(s.fix)
	}
}

// sentenceUTC returns the time of day of tokens[1], zero when absent or invalid.
func sentenceUTC(tokens []string) uint32 {
	if len(tokens) < 2 {
		return 0
	}
	var t Time
	if err := ParseHHMMSS(tokens[1], &t); err != nil {
		return 0
	}
	return t.TimeOfDayMillis()
}

// HandleGGA decodes a GGA sentence into the session fix and publishes the
// fix when it matches the last RMC.
func (s *Session) HandleGGA(tokens []string) (Result, error) {
	res, err := ParseGGA(tokens, &s.fix)
	if err != nil {
		return res, err
	}
	s.ggaUTC = sentenceUTC(tokens)
	s.publishFix()
	return res, nil
}

// HandleRMC decodes an RMC sentence into the session fix and publishes the
// fix when it matches the last GGA.
func (s *Session) HandleRMC(tokens []string) (Result, error) {
	res, err := ParseRMC(tokens, &s.fix)
	if err != nil {
		return res, err
	}
	s.rmcUTC = sentenceUTC(tokens)
	s.publishFix()
	return res, nil
}

func (s *Session) resetGSV() {
	s.satCount = 0
	s.gsvExpected = 1
}

// HandleGSV accumulates one GSV sentence. When the accumulated count
// reaches the announced number of satellites the list is published and the
// cycle restarts. Out of sequence or undecodable sentences restart the cycle.
func (s *Session) HandleGSV(tokens []string) (Result, error) {
	h, err := ParseGSVHeader(tokens)
	if err != nil {
		return Failed, err
	}
	if h.NumberOfSVs == 0 {
		return NoUpdate, nil
	}
	if h.MessageNumber != s.gsvExpected {
		want := s.gsvExpected
		s.resetGSV()
		return Failed, fmt.Errorf("gsv: message %d, expected %d: %w", h.MessageNumber, want, ErrMalformed)
	}
	s.gsvExpected++

	n, err := ParseGSVSatellites(tokens, s.satellites[s.satCount:])
	if err != nil {
		s.resetGSV()
		return Failed, err
	}
	s.satCount += n

	if s.satCount == int(h.NumberOfSVs) {
		if s.pub != nil {
			s.pub.PublishSatellites(s.satellites[:s.satCount])
		}
		s.resetGSV()
		return Updated, nil
	}
	return NoUpdate, nil
}

// Handle dispatches on the sentence type in tokens[0]. Sentences other
// than GGA, RMC and GSV are ignored.
func (s *Session) Handle(tokens []string) (Result, error) {
	if len(tokens) == 0 {
		return Failed, fmt.Errorf("empty sentence: %w", ErrMalformed)
	}
	switch SentenceType(tokens[0]) {
	case "GGA":
		return s.HandleGGA(tokens)
	case "RMC":
		return s.HandleRMC(tokens)
	case "GSV":
		return s.HandleGSV(tokens)
	default:
		return NoUpdate, nil
	}
}

// SentenceType returns the three letter type of a "$<talker><type>" id,
// upper cased. Proprietary and short ids are returned as is.
func SentenceType(id string) string {
	id = strings.TrimPrefix(id, "$")
	if len(id) > 3 {
		id = id[len(id)-3:]
	}
	return strings.ToUpper(id)
}
