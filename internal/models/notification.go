package models

import "time"

// Notification is the persisted copy of an event pushed to a user. The live
// copy goes over the websocket hub; this row is what the user sees when they
// were offline at the time.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"size:50;not null;index" json:"type"`
	Title     string     `gorm:"size:255" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	Data      string     `gorm:"type:text" json:"data"` // JSON payload, mirrors the websocket frame
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
