package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordChangeMessage announces one successful write to a business table.
// It carries identifiers only; the audit worker persists the row. EventID
// lets the consumer deduplicate redeliveries.
type RecordChangeMessage struct {
	EventID   string    `json:"event_id"`
	Table     string    `json:"table"`
	RecordID  int64     `json:"record_id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message with a fresh event id.
func NewRecordChangeMessage(table string, recordID int64, op string) *RecordChangeMessage {
	return &RecordChangeMessage{
		EventID:   uuid.NewString(),
		Table:     table,
		RecordID:  recordID,
		Op:        op,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes.
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
