package model

import "time"

// RunStatus represents the outcome state of a tracker run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusEmpty    RunStatus = "empty" // scrape found nothing, no sheet written
	RunStatusFailed   RunStatus = "failed"
)

// Run is one invocation of the tracker for a brand.
type Run struct {
	ID        string     `json:"id"`
	Brand     string     `json:"brand"`
	Date      string     `json:"date"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the counts produced by a run.
type RunResult struct {
	Pages        int    `json:"pages"`
	Records      int    `json:"records"`
	Appeared     int    `json:"appeared"`
	Disappeared  int    `json:"disappeared"`
	ComparedWith string `json:"compared_with,omitempty"` // date of the previous snapshot
	DiffSkipped  bool   `json:"diff_skipped"`
}
