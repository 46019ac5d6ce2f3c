package models

import "time"

// Player is the public view of a registered user
type Player struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	MemberSince time.Time `json:"memberSince"`
}

// FriendChat is a single chat line between two friends
type FriendChat struct {
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Text     string    `json:"text"`
	Datetime time.Time `json:"datetime"`
}
