package sensor

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"potsface/internal/hrm"
)

// mqttStale is how long a reading stays usable without a fresh message.
// After that the source reports "unavailable" rather than a frozen value.
const mqttStale = 5 * time.Second

// MQTTConfig configures the MQTT-backed sensor source.
type MQTTConfig struct {
	Broker   string `json:"broker"`
	Topic    string `json:"topic"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// hrMessage is the payload a wearable publishes on the heart-rate topic.
type hrMessage struct {
	BPM int `json:"bpm"`
}

// MQTT is a Source fed by a wearable publishing readings to a broker. The
// broker connection auto-reconnects; while it is down, or when messages stop
// arriving, readings are unavailable and the watchface shows the
// disconnected indicator.
type MQTT struct {
	client mqtt.Client

	mu       sync.Mutex
	raw      int
	received time.Time
	filter   ewma
}

// NewMQTT connects to the broker and subscribes to the heart-rate topic.
func NewMQTT(cfg MQTTConfig) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt sensor requires a broker address")
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "potsface/heartrate"
	}

	m := &MQTT{filter: ewma{alpha: simAlpha}}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(fmt.Sprintf("potsface-%d", time.Now().Unix()))
	opts.SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(client mqtt.Client) {
		// (Re)subscribe on every connect so reconnects pick the topic
		// back up.
		client.Subscribe(topic, 1, m.handleMessage)
	}

	m.client = mqtt.NewClient(opts)
	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to mqtt broker: %w", token.Error())
	}
	return m, nil
}

func (m *MQTT) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	bpm, err := parseReading(msg.Payload())
	if err != nil {
		return // malformed payloads are dropped, not fatal
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = bpm
	m.received = time.Now()
}

// Read returns the most recently published reading, or an unavailable
// reading if the feed has gone stale.
func (m *MQTT) Read() hrm.Reading {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raw <= 0 || time.Since(m.received) > mqttStale {
		return hrm.Reading{}
	}
	return hrm.Reading{
		Raw:      m.raw,
		Filtered: m.filter.update(m.raw),
	}
}

// Connected reports whether the broker link is up and readings are fresh.
func (m *MQTT) Connected() bool {
	if !m.client.IsConnected() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.received.IsZero() && time.Since(m.received) <= mqttStale
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}

// parseReading decodes a published heart-rate payload. Values outside the
// plausible human range are rejected.
func parseReading(payload []byte) (int, error) {
	var msg hrMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return 0, fmt.Errorf("decoding heart-rate message: %w", err)
	}
	if msg.BPM <= 0 || msg.BPM > 250 {
		return 0, fmt.Errorf("heart rate %d out of range", msg.BPM)
	}
	return msg.BPM, nil
}
