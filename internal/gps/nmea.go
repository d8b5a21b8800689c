package gps

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gnssnmea/internal/nmea0183"
)

const defaultSatellites = 64

// Sink receives JSON encoded reports. kind is KindFix or KindSatellites.
type Sink interface {
	Publish(kind string, payload []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(kind string, payload []byte) error

func (f SinkFunc) Publish(kind string, payload []byte) error {
	return f(kind, payload)
}

// nmeaState binds one nmea0183.Session to the snapshot and sinks.
type nmeaState struct {
	device string
	baud   int

	session *nmea0183.Session
	sinks   []Sink
	now     func() time.Time

	fix     nmea0183.Fix
	fixOK   bool
	lastFix time.Time

	sats []nmea0183.Satellite

	published bool

	sentences uint64
	rejected  uint64
	lastErr   string
}

func newNMEAState(device string, baud int, satellites int, sinks []Sink) *nmeaState {
	if satellites <= 0 {
		satellites = defaultSatellites
	}
	st := &nmeaState{device: device, baud: baud, sinks: sinks, now: time.Now}
	st.session = nmea0183.NewSession(make([]nmea0183.Satellite, satellites), st)
	return st
}

// ingest decodes one raw line. It reports whether a fix or satellite list
// was published.
func (s *nmeaState) ingest(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return false, nil
	}
	s.sentences++

	tokens := nmea0183.Split(line)
	if !nmea0183.Validate(tokens) {
		return false, s.reject(fmt.Errorf("nmea: checksum mismatch: %q", line))
	}

	s.published = false
	if _, err := s.session.Handle(tokens[:len(tokens)-1]); err != nil {
		return false, s.reject(err)
	}
	return s.published, nil
}

func (s *nmeaState) reject(err error) error {
	s.rejected++
	s.lastErr = err.Error()
	return err
}

func (s *nmeaState) PublishFix(fix nmea0183.Fix) {
	s.fix = fix
	s.fixOK = fix.Info.FixStatus != nmea0183.FixStatusNoFix
	s.lastFix = s.now().UTC()
	s.published = true
	s.send(KindFix, newFixReport(fix))
}

func (s *nmeaState) PublishSatellites(sats []nmea0183.Satellite) {
	s.sats = append(s.sats[:0], sats...)
	s.published = true
	s.send(KindSatellites, newSatellitesReport(sats))
}

func (s *nmeaState) send(kind string, v any) {
	if len(s.sinks) == 0 {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("gps report marshal failed kind=%s: %v", kind, err)
		return
	}
	for _, sink := range s.sinks {
		if err := sink.Publish(kind, payload); err != nil {
			log.Printf("gps report publish failed kind=%s: %v", kind, err)
		}
	}
}

func (s *nmeaState) snapshot() Snapshot {
	out := Snapshot{
		Enabled:   true,
		Valid:     s.fixOK,
		Device:    s.device,
		Baud:      s.baud,
		Sentences: s.sentences,
		Rejected:  s.rejected,
		LastError: s.lastErr,
	}
	if !s.lastFix.IsZero() {
		fix := newFixReport(s.fix)
		out.Fix = &fix
		out.LatDeg = float64(s.fix.Nav.Latitude) / 1e9
		out.LonDeg = float64(s.fix.Nav.Longitude) / 1e9
		out.LastFixUTC = s.lastFix.Format(time.RFC3339Nano)
	}
	if len(s.sats) > 0 {
		out.Satellites = newSatellitesReport(s.sats).Satellites
	}
	return out
}
