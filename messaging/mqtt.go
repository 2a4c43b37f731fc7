package messaging

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"toolcrib/config"
)

type mqttPublisher struct {
	client  mqtt.Client
	timeout time.Duration
}

func newMQTTPublisher(cfg *config.MQTTConfig, timeout time.Duration) *mqttPublisher {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	return &mqttPublisher{client: mqtt.NewClient(opts), timeout: timeout}
}

func (p *mqttPublisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt connect timeout")
	}
	return token.Error()
}

func (p *mqttPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish timeout: %s", topic)
	}
	return token.Error()
}

func (p *mqttPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
