package analyses

import (
	"time"

	"stress-backend/internal/stress"
)

// Record is one persisted stress analysis.
type Record struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Emotion        stress.Emotion `json:"emotion"`
	Confidence     float64        `json:"confidence"`
	DailyRoutine   string         `json:"dailyRoutine"`
	StressLevel    stress.Level   `json:"stressLevel"`
	Recommendation string         `json:"recommendation"`
	ImageKey       string         `json:"imageKey,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Input is what a caller supplies for a single analysis. Routine is kept
// untyped so a non-text value from a JSON body reaches the classifier as-is.
type Input struct {
	Emotion    string
	Confidence float64
	Routine    any
	ImageKey   string
}

// DashboardPoint is one entry in the stress trend, ordered oldest first.
type DashboardPoint struct {
	At    time.Time    `json:"at"`
	Level stress.Level `json:"level"`
	Rank  int          `json:"rank"`
}

// Dashboard summarizes a user's analysis history.
type Dashboard struct {
	Total  int                  `json:"total"`
	Points []DashboardPoint     `json:"points"`
	Counts map[stress.Level]int `json:"counts"`
	Latest stress.Level         `json:"latest,omitempty"`
}
