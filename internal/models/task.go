package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Task is a piece of work due by Deadline.
type Task struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	Name           string     `json:"name"`
	Deadline       civil.Date `json:"deadline"`
	EstimatedHours float64    `json:"estimated_hours"`
	Memo           string     `json:"memo,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
