package amqp

import (
	"encoding/json"
	"time"
)

// KeywordLearnedMessage announces that the feedback loop added a keyword to
// a category. The worker mirrors these into the keyword audit sheet.
type KeywordLearnedMessage struct {
	Category  string    `json:"category"`
	Keyword   string    `json:"keyword"`
	Timestamp time.Time `json:"timestamp"`
}

func NewKeywordLearnedMessage(category, keyword string) *KeywordLearnedMessage {
	return &KeywordLearnedMessage{
		Category:  category,
		Keyword:   keyword,
		Timestamp: time.Now(),
	}
}

func (m *KeywordLearnedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func KeywordLearnedMessageFromJSON(data []byte) (*KeywordLearnedMessage, error) {
	var msg KeywordLearnedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
