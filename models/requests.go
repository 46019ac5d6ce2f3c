package models

import "time"

// FriendMatchRequest is a directed invitation from one friend to another
type FriendMatchRequest struct {
	From        string    `json:"sender"`
	To          string    `json:"receiver"`
	RequestedAt time.Time `json:"requestedAt"`
}

// RandomMatchRequest is a queue entry waiting for any suitably rated opponent.
// Rating is a snapshot taken when the request was made.
type RandomMatchRequest struct {
	Username    string    `json:"username"`
	RequestedAt time.Time `json:"requestedAt"`
	Rating      float64   `json:"rating"`
}

// Pairing is one arranged random match
type Pairing struct {
	Player1 string
	Player2 string
}
