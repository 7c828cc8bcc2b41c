// Package notify publishes finished assignments over MQTT so downstream
// consumers (shop displays, chat bridges) can react to a new schedule.
// Delivery is best-effort: a broker failure is logged and never fails
// the planning pass.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	corelogger "github.com/mfaivrep/planif/core/logger"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "planif"
	}
	if c.Topic == "" {
		c.Topic = "planif/assignments"
	}
}

// Publisher emits assignment notifications.
type Publisher interface {
	PublishAssignment(runID string, a model.Assignment) error
	Close()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   corelogger.Logger
}

// NewPahoPublisher connects to the broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("notify: connect %s: %w", cfg.Broker, token.Error())
	}
	return &PahoPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("notify"),
	}, nil
}

type assignmentMessage struct {
	RunID      string `json:"run_id"`
	ItemID     string `json:"item_id"`
	ResourceID string `json:"resource_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Minutes    int    `json:"minutes"`
}

// PublishAssignment emits one JSON message for the assignment.
func (p *PahoPublisher) PublishAssignment(runID string, a model.Assignment) error {
	msg := assignmentMessage{
		RunID:      runID,
		ItemID:     a.ItemID,
		ResourceID: a.ResourceID,
		Start:      model.FormatStartTime(a.Start),
		End:        model.FormatStartTime(a.End),
		Minutes:    a.Minutes,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s", p.topic, a.ItemID)
	if token := p.cli.Publish(topic, p.qos, false, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("notify: publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
