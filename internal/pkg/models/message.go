package models

// Message is a chat line scoped to a trip
type Message struct {
	ID        string `json:"id"`
	TripID    string `json:"tripId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// MessageRequest represents the add-message payload
type MessageRequest struct {
	Text string `json:"text"`
}
