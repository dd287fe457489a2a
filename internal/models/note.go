package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Note is a short to-do pinned to a calendar day. It takes no part in planning.
type Note struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Date      civil.Date `json:"date"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
}
