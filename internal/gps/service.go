package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gnssnmea/internal/nmea0183"
)

// Config controls the GPS reader.
//
// Device may be empty to auto-detect. Baud must be a supported rate by the
// platform implementation.
//
// Satellites bounds the number of satellites collected per GSV cycle.
// Commands are sentence bodies (without '$' and checksum) written to the
// receiver once the port is open.
type Config struct {
	Enable bool

	Device string
	Baud   int

	Satellites int
	Commands   []string
}

type Snapshot struct {
	Enabled bool `json:"enabled"`
	Valid   bool `json:"valid"`

	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`

	LatDeg float64    `json:"lat_deg,omitempty"`
	LonDeg float64    `json:"lon_deg,omitempty"`
	Fix    *FixReport `json:"fix,omitempty"`

	Satellites []SatelliteReport `json:"satellites,omitempty"`

	Sentences uint64 `json:"sentences"`
	Rejected  uint64 `json:"rejected"`

	LastFixUTC string `json:"last_fix_utc,omitempty"`
	LastError  string `json:"last_error,omitempty"`
}

// Recorder captures raw lines as they are ingested.
type Recorder interface {
	WriteLine(now time.Time, line string) error
}

// openSerial is replaced in tests.
var openSerial = openSerialPort

type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last atomic.Value // Snapshot

	mu   sync.Mutex
	port io.ReadWriteCloser

	// ingestMu serializes access to the session.
	ingestMu sync.Mutex
	st       *nmeaState
	rec      Recorder
}

func New(cfg Config, sinks ...Sink) *Service {
	s := &Service{cfg: cfg}
	s.st = newNMEAState(cfg.Device, cfg.Baud, cfg.Satellites, sinks)
	s.last.Store(Snapshot{Enabled: cfg.Enable, Device: cfg.Device, Baud: cfg.Baud})
	return s
}

// SetRecorder attaches a recorder for raw lines. It must be called before
// Start.
func (s *Service) SetRecorder(r Recorder) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()
	s.rec = r
}

func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if !s.cfg.Enable {
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setError("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	port, err := openSerial(device, baud)
	if err != nil {
		s.setError(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return err
	}
	s.port = port

	s.ingestMu.Lock()
	s.st.device = device
	s.st.baud = baud
	s.last.Store(s.st.snapshot())
	s.ingestMu.Unlock()

	for _, body := range s.cfg.Commands {
		if err := s.sendLocked("%s", body); err != nil {
			log.Printf("gps command failed body=%q: %v", body, err)
		}
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			_ = port.Close()
		}()

		log.Printf("gps enabled device=%s baud=%d", device, baud)

		reader := bufio.NewScanner(port)
		// NMEA sentences are at most 82 chars, but allow some headroom.
		reader.Buffer(make([]byte, 0, 256), 4096)

		for {
			select {
			case <-childCtx.Done():
				return
			default:
			}

			if !reader.Scan() {
				err := reader.Err()
				if err == nil {
					err = io.EOF
				}
				s.setError(fmt.Sprintf("gps read stopped: %v", err))
				return
			}

			line := strings.TrimSpace(reader.Text())
			if line == "" {
				continue
			}
			// Decode errors are kept in the snapshot rather than logged.
			_ = s.Ingest(line)
		}
	}()
	return nil
}

// Ingest decodes one raw NMEA line, updating the snapshot when the session
// publishes. Lines not starting with '$' are ignored.
func (s *Service) Ingest(line string) error {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	if s.rec != nil {
		if err := s.rec.WriteLine(time.Now(), line); err != nil {
			log.Printf("gps record failed: %v", err)
		}
	}

	published, err := s.st.ingest(line)
	if err != nil || published {
		s.last.Store(s.st.snapshot())
	}
	return err
}

// Send writes a command sentence built from format and args, adding the
// '$' prefix and checksum.
func (s *Service) Send(format string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendLocked(format, args...)
}

func (s *Service) sendLocked(format string, args ...any) error {
	if s.port == nil {
		return fmt.Errorf("gps port not open")
	}
	_, err := io.WriteString(s.port, nmea0183.FormatSentence(format, args...)+"\r\n")
	return err
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	port := s.port
	s.cancel = nil
	s.port = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if port != nil {
		_ = port.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

func (s *Service) setError(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	// Do not force Valid=false here; transient read issues shouldn't flip validity.
	s.last.Store(cur)
}

func autoDetectDevice() string {
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
