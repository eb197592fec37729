package queue

import (
	"encoding/json"
	"time"
)

// RefreshMessage asks the worker to re-fetch one viewer's snapshot. It
// carries only the viewer address; the worker reads everything else from the
// ledger.
type RefreshMessage struct {
	Viewer    string    `json:"viewer"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRefreshMessage creates a refresh message for the given viewer.
func NewRefreshMessage(viewer string) *RefreshMessage {
	return &RefreshMessage{
		Viewer:    viewer,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON creates a message from JSON bytes
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
