package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Routing keys of the events published on the exchange.
const (
	RoutingIngredientRegistered = "ingredient.registered"
	RoutingContributionAdded    = "contribution.added"
)

// IngredientRegisteredMessage announces a newly stored ingredient.
// Consumers load the full record by ID.
type IngredientRegisteredMessage struct {
	MessageID string    `json:"message_id"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIngredientRegisteredMessage creates a message for ingredient id.
func NewIngredientRegisteredMessage(id int64) *IngredientRegisteredMessage {
	return &IngredientRegisteredMessage{
		MessageID: uuid.NewString(),
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IngredientRegisteredMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IngredientRegisteredMessageFromJSON decodes a message body.
func IngredientRegisteredMessageFromJSON(data []byte) (*IngredientRegisteredMessage, error) {
	var msg IngredientRegisteredMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ContributionAddedMessage announces a recorded contribution.
type ContributionAddedMessage struct {
	MessageID string    `json:"message_id"`
	ID        int64     `json:"id"`
	AmountG   float64   `json:"amount_g"`
	Timestamp time.Time `json:"timestamp"`
}

func NewContributionAddedMessage(id int64, amountG float64) *ContributionAddedMessage {
	return &ContributionAddedMessage{
		MessageID: uuid.NewString(),
		ID:        id,
		AmountG:   amountG,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ContributionAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ContributionAddedMessageFromJSON decodes a message body.
func ContributionAddedMessageFromJSON(data []byte) (*ContributionAddedMessage, error) {
	var msg ContributionAddedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
