package model

import "time"

// Occasion is carried over from an earlier revision. No endpoint reads or
// writes it yet.
type Occasion struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Attendees []string  `json:"attendees"`
	DateTime  time.Time `json:"date_time"`
	Duration  string    `json:"duration"`
}
