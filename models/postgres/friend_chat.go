package postgres

import (
	"Connect4/models"
	"time"
)

/*
 * 'FriendChat' is one chat line sent from a user to a friend
 */
type FriendChat struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	Sender   string    `gorm:"size:50;not null;index:idx_friend_chats_pair,priority:1"`
	Receiver string    `gorm:"size:50;not null;index:idx_friend_chats_pair,priority:2"`
	Text     string    `gorm:"type:text;not null"`
	Datetime time.Time `gorm:"default:CURRENT_TIMESTAMP;index"`

	// Relationships
	SenderUser   User `gorm:"foreignKey:Sender;constraint:OnDelete:CASCADE"`
	ReceiverUser User `gorm:"foreignKey:Receiver;constraint:OnDelete:CASCADE"`
}

func (c *FriendChat) ToModel() models.FriendChat {
	return models.FriendChat{Sender: c.Sender, Receiver: c.Receiver, Text: c.Text, Datetime: c.Datetime}
}
