package domain

import "time"

// ProgressStatus is the coarse per-(user, project) lab status.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "NOT_STARTED"
	StatusInProgress ProgressStatus = "IN_PROGRESS"
	StatusCompleted  ProgressStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s ProgressStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ProjectProgress is one row per (user, project).
type ProjectProgress struct {
	UserID         UserID
	ProjectID      ProjectID
	Status         ProgressStatus
	LastActivityAt time.Time
}

// NextStatusOnWrite is the promotion policy applied on every accepted state
// write. Any telemetry unconditionally moves the pair to IN_PROGRESS, even
// from COMPLETED; only the admin status endpoint sets COMPLETED. Kept as one
// function so the demotion-from-COMPLETED behavior can change without
// touching the write path.
func NextStatusOnWrite(ProgressStatus) ProgressStatus {
	return StatusInProgress
}
