package notify

import (
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// AlertPublisher pushes a text alert to the shop's out-of-band channel.
// Best effort: failures are logged and swallowed.
type AlertPublisher interface {
	Publish(text string)
}

// LogAlertPublisher logs alerts instead of publishing them.
type LogAlertPublisher struct{}

// Publish logs the alert text.
func (p *LogAlertPublisher) Publish(text string) {
	log.Infof("Alert (no broker configured): %s", text)
}

// MQTTAlertPublisher publishes alerts to an MQTT topic.
type MQTTAlertPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTAlertPublisher connects to the broker and returns a publisher
// for the given topic.
func NewMQTTAlertPublisher(broker, clientID, topic string) (*MQTTAlertPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect failed: %v", token.Error())
	}

	return &MQTTAlertPublisher{client: client, topic: topic}, nil
}

// Publish sends the alert. Errors are logged, never returned: a dead
// broker must not affect the scan that produced the alert.
func (p *MQTTAlertPublisher) Publish(text string) {
	token := p.client.Publish(p.topic, 1, false, text)
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		log.WithError(token.Error()).Errorf("Failed to publish alert to %s", p.topic)
	}
}

// Close disconnects from the broker.
func (p *MQTTAlertPublisher) Close() {
	p.client.Disconnect(250)
}

// NewAlertPublisherFromEnv returns an MQTT publisher when MQTT_BROKER is
// set, otherwise the logging fallback.
func NewAlertPublisherFromEnv() AlertPublisher {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		log.Info("MQTT_BROKER not set, alerts will be logged only")
		return &LogAlertPublisher{}
	}
	topic := os.Getenv("MQTT_ALERT_TOPIC")
	if topic == "" {
		topic = "garage/alerts"
	}
	publisher, err := NewMQTTAlertPublisher(broker, "auto-service-crm", topic)
	if err != nil {
		log.WithError(err).Error("Failed to connect to MQTT broker, alerts will be logged only")
		return &LogAlertPublisher{}
	}
	return publisher
}
