package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPS    GPSConfig    `yaml:"gps"`
	Record RecordConfig `yaml:"record"`
	Replay ReplayConfig `yaml:"replay"`
	UDP    UDPConfig    `yaml:"udp"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Web    WebConfig    `yaml:"web"`
}

type GPSConfig struct {
	Enable bool `yaml:"enable"`
	// Source is "nmea" (serial receiver) or "replay" (capture log).
	Source string `yaml:"source"`
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	Satellites int      `yaml:"satellites"`
	Commands   []string `yaml:"commands"`
}

type RecordConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

type ReplayConfig struct {
	Path  string  `yaml:"path"`
	Speed float64 `yaml:"speed"`
	Loop  bool    `yaml:"loop"`
}

type UDPConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type MQTTConfig struct {
	Enable      bool   `yaml:"enable"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         int    `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

const (
	SourceNMEA   = "nmea"
	SourceReplay = "replay"
)

var yamlLinePrefix = regexp.MustCompile(`^line \d+: `)

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			msgs := make([]string, 0, len(te.Errors))
			for _, e := range te.Errors {
				msgs = append(msgs, yamlLinePrefix.ReplaceAllString(e, ""))
			}
			return Config{}, fmt.Errorf("config contains unknown fields: %s", strings.Join(msgs, "; "))
		}
		return Config{}, err
	}

	if err := applyGPS(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyRecordReplay(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyOutputs(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyGPS(cfg *Config) error {
	g := &cfg.GPS
	g.Source = strings.ToLower(strings.TrimSpace(g.Source))
	if g.Source == "" {
		g.Source = SourceNMEA
	}
	if g.Source != SourceNMEA && g.Source != SourceReplay {
		return fmt.Errorf("gps.source must be 'nmea' or 'replay'")
	}
	if g.Baud == 0 {
		g.Baud = 9600
	}
	if g.Baud < 0 {
		return fmt.Errorf("gps.baud must be > 0")
	}
	if g.Satellites == 0 {
		g.Satellites = 64
	}
	if g.Satellites < 0 || g.Satellites > 255 {
		return fmt.Errorf("gps.satellites must be between 1 and 255")
	}
	for i, c := range g.Commands {
		c = strings.TrimSpace(c)
		if c == "" {
			return fmt.Errorf("gps.commands[%d] is empty", i)
		}
		if strings.ContainsAny(c, "$*\r\n") {
			return fmt.Errorf("gps.commands[%d] must be a sentence body without '$', '*' or line breaks", i)
		}
		g.Commands[i] = c
	}
	return nil
}

func applyRecordReplay(cfg *Config) error {
	if cfg.Record.Enable && cfg.Record.Path == "" {
		return fmt.Errorf("record.path is required when record.enable is true")
	}

	if cfg.GPS.Source == SourceReplay {
		if cfg.Replay.Path == "" {
			return fmt.Errorf("replay.path is required when gps.source is 'replay'")
		}
		if cfg.Record.Enable {
			return fmt.Errorf("record cannot be enabled when gps.source is 'replay'")
		}
	}
	if cfg.Replay.Speed == 0 {
		cfg.Replay.Speed = 1
	}
	if cfg.Replay.Speed < 0 {
		return fmt.Errorf("replay.speed must be > 0")
	}
	return nil
}

func applyOutputs(cfg *Config) error {
	if cfg.UDP.Enable && cfg.UDP.Dest == "" {
		return fmt.Errorf("udp.dest is required when udp.enable is true")
	}
	if cfg.Web.Listen == "" {
		cfg.Web.Listen = ":8080"
	}

	m := &cfg.MQTT
	if !m.Enable {
		return nil
	}
	if m.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt.enable is true")
	}
	if m.ClientID == "" {
		m.ClientID = "gnssnmea"
	}
	if m.TopicPrefix == "" {
		m.TopicPrefix = "gnss"
	}
	if strings.ContainsAny(m.TopicPrefix, "#+") {
		return fmt.Errorf("mqtt.topic_prefix must not contain wildcards")
	}
	if m.QoS < 0 || m.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	return nil
}
