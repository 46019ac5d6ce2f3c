package postgres

import (
	"time"
)

/*
 * 'User' is a registered player account. Username is the natural key used by
 * every other table.
 */
type User struct {
	Username     string    `gorm:"primaryKey;size:50;not null"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the player's stats, created with the user
	Stats Stats `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
}
