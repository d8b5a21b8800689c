package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gnssnmea/internal/config"
	"gnssnmea/internal/gps"
	"gnssnmea/internal/mqttpub"
	"gnssnmea/internal/replay"
	"gnssnmea/internal/udp"
	"gnssnmea/internal/web"
)

// outputs owns the sinks built from config so they can be closed together.
type outputs struct {
	sinks   []gps.Sink
	closers []func()
}

func (o *outputs) Close() {
	for i := len(o.closers) - 1; i >= 0; i-- {
		o.closers[i]()
	}
}

// connectMQTT is replaced in tests.
var connectMQTT = func(c mqttpub.Config) (gps.Sink, func(), error) {
	p, err := mqttpub.Connect(c)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func buildOutputs(cfg config.Config) (*outputs, error) {
	o := &outputs{}
	if cfg.UDP.Enable {
		b, err := udp.NewBroadcaster(cfg.UDP.Dest)
		if err != nil {
			return nil, fmt.Errorf("udp broadcaster init failed: %w", err)
		}
		o.sinks = append(o.sinks, b)
		o.closers = append(o.closers, func() { _ = b.Close() })
		log.Printf("udp dest=%s", cfg.UDP.Dest)
	}
	if cfg.MQTT.Enable {
		sink, closeFn, err := connectMQTT(mqttpub.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         byte(cfg.MQTT.QoS),
			Retain:      cfg.MQTT.Retain,
		})
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("mqtt init failed: %w", err)
		}
		o.sinks = append(o.sinks, sink)
		o.closers = append(o.closers, closeFn)
	}
	return o, nil
}

func gpsConfig(cfg config.Config) gps.Config {
	return gps.Config{
		Enable:     cfg.GPS.Enable,
		Device:     cfg.GPS.Device,
		Baud:       cfg.GPS.Baud,
		Satellites: cfg.GPS.Satellites,
		Commands:   cfg.GPS.Commands,
	}
}

func run(ctx context.Context, cfg config.Config, logs *web.LogBuffer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out, err := buildOutputs(cfg)
	if err != nil {
		return err
	}
	defer out.Close()

	svc := gps.New(gpsConfig(cfg), out.sinks...)

	if cfg.Record.Enable {
		w, err := replay.CreateWriter(cfg.Record.Path)
		if err != nil {
			return fmt.Errorf("record open failed: %w", err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				log.Printf("record close failed: %v", err)
			}
		}()
		svc.SetRecorder(w)
		log.Printf("recording path=%s", cfg.Record.Path)
	}

	if cfg.Web.Enable {
		go func() {
			log.Printf("web listen=%s", cfg.Web.Listen)
			if err := web.Serve(ctx, cfg.Web.Listen, svc, logs); err != nil && ctx.Err() == nil {
				log.Printf("web server stopped: %v", err)
			}
		}()
	}

	defer func() {
		snap := svc.Snapshot()
		log.Printf("gps summary sentences=%d rejected=%d valid=%t last_fix_utc=%s",
			snap.Sentences, snap.Rejected, snap.Valid, snap.LastFixUTC)
	}()

	if cfg.GPS.Source == config.SourceReplay {
		return runReplay(ctx, cfg, nil, svc.Ingest)
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Close()
	<-ctx.Done()
	return nil
}

type ctxSleeper struct {
	ctx context.Context
}

func (s ctxSleeper) Sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
	case <-t.C:
	}
}

// runReplay feeds a capture log to ingest with its recorded timing.
// Rejected sentences are counted, not fatal.
func runReplay(ctx context.Context, cfg config.Config, sleeper replay.Sleeper, ingest func(line string) error) error {
	f, err := os.Open(cfg.Replay.Path)
	if err != nil {
		return err
	}
	recs, err := replay.NewReader(f).ReadAll()
	_ = f.Close()
	if err != nil {
		return err
	}

	if sleeper == nil {
		sleeper = ctxSleeper{ctx: ctx}
	}

	log.Printf("replay path=%s records=%d speed=%.2f loop=%t", cfg.Replay.Path, len(recs), cfg.Replay.Speed, cfg.Replay.Loop)

	rejected := 0
	err = replay.Play(recs, cfg.Replay.Speed, cfg.Replay.Loop, sleeper, func(line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ingest(line); err != nil {
			rejected++
		}
		return nil
	})
	if rejected > 0 {
		log.Printf("replay rejected=%d", rejected)
	}
	return err
}
