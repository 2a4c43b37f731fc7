package messaging

import (
	"fmt"

	"toolcrib/config"
)

// Publisher is the transport behind the client. Both backends are
// publish-only; the workshop never consumes its own broadcast.
type Publisher interface {
	Connect() error
	Publish(topic string, payload []byte) error
	IsConnected() bool
	Close() error
}

// Client routes envelopes to the configured backend. A "none" backend
// yields a client that drops everything, so callers never branch.
type Client struct {
	pub        Publisher
	topic      string
	workshopID string
}

func NewClient(cfg *config.MessagingConfig, workshopID string) (*Client, error) {
	c := &Client{topic: cfg.Topic, workshopID: workshopID}
	switch cfg.Backend {
	case "mqtt":
		c.pub = newMQTTPublisher(&cfg.MQTT, cfg.Timeout.Std())
	case "kafka":
		c.pub = newKafkaPublisher(&cfg.Kafka, cfg.Timeout.Std())
	case "none":
		c.pub = nil
	default:
		return nil, fmt.Errorf("unsupported messaging backend: %s", cfg.Backend)
	}
	return c, nil
}

func (c *Client) Connect() error {
	if c.pub == nil {
		return nil
	}
	return c.pub.Connect()
}

func (c *Client) IsConnected() bool {
	return c.pub != nil && c.pub.IsConnected()
}

// PublishEvent wraps the payload in an envelope and publishes it on the
// workshop-scoped topic. Disabled or disconnected transports drop the
// event silently.
func (c *Client) PublishEvent(eventType string, payload any) error {
	if c.pub == nil || !c.pub.IsConnected() {
		return nil
	}
	env := NewEnvelope(eventType, c.workshopID, payload)
	data, err := env.Encode()
	if err != nil {
		return err
	}
	return c.pub.Publish(EventTopic(c.topic, c.workshopID), data)
}

func (c *Client) Close() error {
	if c.pub == nil {
		return nil
	}
	return c.pub.Close()
}
