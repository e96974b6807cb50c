package models

import "time"

// TripEvent is published after a trip write succeeds
type TripEvent struct {
	Trip       Trip      `json:"trip"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// TripDeletedEvent is published after a trip is removed
type TripDeletedEvent struct {
	TripID     string    `json:"tripId"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// MessageEvent is published after a chat message is stored
type MessageEvent struct {
	Message    Message   `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}
