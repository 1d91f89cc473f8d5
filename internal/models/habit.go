package models

import "time"

// Schedule defines which weekdays a habit is due. An empty Days set means
// the habit is due every day.
type Schedule struct {
	Days     []time.Weekday `json:"days,omitempty"`
	Reminder string         `json:"reminder,omitempty"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Category  string     `json:"category,omitempty"`
	IsActive  bool       `json:"is_active"`
	Schedule  Schedule   `json:"schedule"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
