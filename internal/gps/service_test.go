package gps

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

type fakePort struct {
	r *io.PipeReader

	mu     sync.Mutex
	writes bytes.Buffer
}

func (p *fakePort) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes.Write(b)
}

func (p *fakePort) Close() error { return p.r.Close() }

func (p *fakePort) written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes.String()
}

func withFakeSerial(t *testing.T) (*fakePort, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	port := &fakePort{r: pr}
	prev := openSerial
	openSerial = func(path string, baud int) (io.ReadWriteCloser, error) {
		return port, nil
	}
	t.Cleanup(func() {
		openSerial = prev
		_ = pw.Close()
	})
	return port, pw
}

func TestService_StartReadsAndSendsCommands(t *testing.T) {
	port, pw := withFakeSerial(t)

	svc := New(Config{Enable: true, Device: "/dev/fake", Baud: 115200, Commands: []string{"PAIR002,3"}})
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer svc.Close()

	if got := port.written(); got != "$PAIR002,3*27\r\n" {
		t.Fatalf("written=%q", got)
	}

	go func() {
		_, _ = io.WriteString(pw, nmeaLine("GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")+"\r\n")
		_, _ = io.WriteString(pw, nmeaLine("GNRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")+"\r\n")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !svc.Snapshot().Valid {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for fix: %+v", svc.Snapshot())
		}
		time.Sleep(5 * time.Millisecond)
	}
	snap := svc.Snapshot()
	if snap.Device != "/dev/fake" || snap.Baud != 115200 {
		t.Fatalf("device=%q baud=%d", snap.Device, snap.Baud)
	}

	if err := svc.Send("PAIR%03d,%d", 2, 3); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got := port.written(); got != "$PAIR002,3*27\r\n$PAIR002,3*27\r\n" {
		t.Fatalf("written=%q", got)
	}
}

func TestService_StartOpenFailure(t *testing.T) {
	prev := openSerial
	wantErr := errors.New("no such device")
	openSerial = func(path string, baud int) (io.ReadWriteCloser, error) { return nil, wantErr }
	defer func() { openSerial = prev }()

	svc := New(Config{Enable: true, Device: "/dev/missing"})
	if err := svc.Start(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want %v", err, wantErr)
	}
	if svc.Snapshot().LastError == "" {
		t.Fatalf("expected last_error")
	}
}

func TestService_DisabledDoesNotOpen(t *testing.T) {
	prev := openSerial
	openSerial = func(path string, baud int) (io.ReadWriteCloser, error) {
		t.Fatalf("openSerial called")
		return nil, nil
	}
	defer func() { openSerial = prev }()

	svc := New(Config{})
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := svc.Send("PAIR002"); err == nil {
		t.Fatalf("expected error sending without a port")
	}
	svc.Close()
}

type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) WriteLine(now time.Time, line string) error {
	r.lines = append(r.lines, line)
	return nil
}

func TestService_IngestRecordsAndPublishes(t *testing.T) {
	c := &capture{}
	rec := &lineRecorder{}
	svc := New(Config{}, c)
	svc.SetRecorder(rec)

	lines := []string{
		nmeaLine("GPGGA,101010,4807.038,N,01131.000,E,2,11,1.2,10.0,M,0.0,M,,"),
		nmeaLine("GPRMC,101010,A,4807.038,S,01131.000,W,1,0,010125,,"),
	}
	for _, l := range lines {
		if err := svc.Ingest(l); err != nil {
			t.Fatalf("Ingest(%q) error: %v", l, err)
		}
	}
	if len(rec.lines) != 2 {
		t.Fatalf("recorded=%d want 2", len(rec.lines))
	}
	snap := svc.Snapshot()
	if !snap.Valid || snap.LatDeg >= 0 || snap.LonDeg >= 0 {
		t.Fatalf("snapshot=%+v", snap)
	}
	if snap.Fix.FixStatus != "DGNSS_FIX" || snap.Fix.FixQuality != "DGNSS" {
		t.Fatalf("fix=%+v", snap.Fix)
	}
	if len(c.kinds) != 1 {
		t.Fatalf("publishes=%d want 1", len(c.kinds))
	}
}
