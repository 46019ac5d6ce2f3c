package models

type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresencePlaying PresenceStatus = "playing"
)
