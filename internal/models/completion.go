package models

import "time"

// Completion is a single day's record for a habit. The pair (HabitID, Day)
// is the primary key. Existence alone does not imply completion: a record
// that was toggled off stays around with Completed=false, so readers must
// check the flag.
type Completion struct {
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Completed bool      `json:"completed"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}
