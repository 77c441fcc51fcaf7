package schema

import "time"

// RunStatus represents the status of a batch evolution run
type RunStatus string

const (
	// RunStatusRunning is the status of a run still in flight
	RunStatusRunning RunStatus = "running"
	// RunStatusCompleted is the status of a run that finished, with or
	// without per-owner failures
	RunStatusCompleted RunStatus = "completed"
	// RunStatusFailed is the status of a run aborted before completion
	RunStatusFailed RunStatus = "failed"
)

// EvolutionRun represents the evolution_runs audit table. One row per batch
// invocation, updated in place as the run progresses.
type EvolutionRun struct {
	// ID is the run identifier, assigned by the runner
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Status is the current run status
	Status RunStatus `gorm:"column:status;not null"`
	// Attempted is the number of owners the run tried to evolve
	Attempted int `gorm:"column:attempted;default:0"`
	// Succeeded is the number of confirmed evolutions
	Succeeded int `gorm:"column:succeeded;default:0"`
	// Failed is the number of owners whose evolution errored
	Failed int `gorm:"column:failed;default:0"`
	// Errors is a newline-joined list of per-owner failure messages
	Errors string `gorm:"column:errors;type:text"`
	// StartedAt is the timestamp when the run started
	StartedAt time.Time `gorm:"column:started_at;not null"`
	// FinishedAt is the timestamp when the run finished
	FinishedAt *time.Time `gorm:"column:finished_at"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (EvolutionRun) TableName() string {
	return "evolution_runs"
}
