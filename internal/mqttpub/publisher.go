// Package mqttpub forwards GPS reports to an MQTT broker.
package mqttpub

import (
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	Broker   string
	ClientID string
	// TopicPrefix is prepended to the report kind, e.g. "gnss/fix".
	TopicPrefix string
	QoS         byte
	Retain      bool
}

type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

type Publisher struct {
	cfg     Config
	client  client
	timeout time.Duration
}

// Connect dials the broker and returns a publisher for it.
func Connect(cfg Config) (*Publisher, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, fmt.Errorf("mqtt broker is empty")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	log.Printf("mqtt connected broker=%s client_id=%s", cfg.Broker, cfg.ClientID)
	return newPublisher(cfg, c), nil
}

func newPublisher(cfg Config, c client) *Publisher {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "gnss"
	}
	return &Publisher{cfg: cfg, client: c, timeout: 2 * time.Second}
}

func (p *Publisher) Topic(kind string) string {
	return strings.TrimSuffix(p.cfg.TopicPrefix, "/") + "/" + kind
}

// Publish sends payload on the topic for kind and waits for the broker
// to acknowledge according to the configured QoS.
func (p *Publisher) Publish(kind string, payload []byte) error {
	topic := p.Topic(kind)
	token := p.client.Publish(topic, p.cfg.QoS, p.cfg.Retain, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
