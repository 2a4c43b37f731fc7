// Package messaging broadcasts workshop change events to external
// listeners (andon boards, planning systems) over MQTT or Kafka. The
// broadcast is fire-and-forget: the document is the source of truth and
// listeners that miss a message resync from it.
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every published event with routing metadata.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	WorkshopID string          `json:"workshop_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEnvelope(eventType, workshopID string, payload any) *Envelope {
	data, _ := json.Marshal(payload)
	return &Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		WorkshopID: workshopID,
		Timestamp:  time.Now(),
		Payload:    data,
	}
}

func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// EventTopic scopes the configured topic by workshop, "prefix/crib-1".
func EventTopic(prefix, workshopID string) string {
	return prefix + "/" + workshopID
}
