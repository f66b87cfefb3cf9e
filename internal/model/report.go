package model

import "time"

// Report is what batch mode hands to outputs: one summary per source file.
type Report struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     Summary   `json:"summary"`
}
