package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotRefreshedMessage announces that a new finance snapshot was stored.
// Consumers re-read the snapshot from the database; the message carries only
// the version and collection counts.
type SnapshotRefreshedMessage struct {
	Version      int64     `json:"version"`
	IncomeCount  int       `json:"income_count"`
	DebtCount    int       `json:"debt_count"`
	PaymentCount int       `json:"payment_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewSnapshotRefreshedMessage creates a refresh notification for a version.
func NewSnapshotRefreshedMessage(version int64, incomes, debts, payments int) *SnapshotRefreshedMessage {
	return &SnapshotRefreshedMessage{
		Version:      version,
		IncomeCount:  incomes,
		DebtCount:    debts,
		PaymentCount: payments,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotRefreshedMessageFromJSON creates a message from JSON bytes
func SnapshotRefreshedMessageFromJSON(data []byte) (*SnapshotRefreshedMessage, error) {
	var msg SnapshotRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
