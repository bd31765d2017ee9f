package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// TransactionSyncMessage is the lightweight payload queued for the sync
// worker. It carries only the transaction ID and the operation; the worker
// fetches the full record from the database.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionSyncMessage(id, op string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *TransactionSyncMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("sync message missing transaction id")
	}
	if m.Op != OpUpsert && m.Op != OpDelete {
		return fmt.Errorf("sync message has unknown op %q", m.Op)
	}
	return nil
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
