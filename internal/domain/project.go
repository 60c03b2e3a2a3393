package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is a static catalog entry for a hardware lab. Created at provisioning
// time, immutable afterwards.
type Project struct {
	ID          ProjectID
	Key         string // stable slug, e.g. "water-level"
	Title       string
	Description string
	Type        PayloadKind // payload variant accepted by this project
	CreatedAt   time.Time
}
