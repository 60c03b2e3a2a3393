package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// Source tags who produced a state entry.
type Source string

const (
	SourceDevice Source = "DEVICE" // physical device over the HTTP device API
	SourceManual Source = "MANUAL" // manual user input on the dashboard
	SourceWeb    Source = "WEB"    // browser toggle
)

// PayloadKind discriminates the per-project payload variants.
type PayloadKind string

const (
	KindAppliance  PayloadKind = "appliance"
	KindWaterLevel PayloadKind = "water-level"
)

// StatePayload is the tagged variant carried by a StateEntry. Each project
// accepts exactly one kind; Validate is the per-variant gate run before any
// write.
type StatePayload interface {
	Kind() PayloadKind
	Validate() error
}

// AppliancePayload is the home-appliances lab state: three independent
// actuators.
type AppliancePayload struct {
	LED1 bool
	LED2 bool
	Fan1 bool
}

func (AppliancePayload) Kind() PayloadKind { return KindAppliance }

// Validate always passes: the three booleans cannot hold an out-of-range
// value once decoded. Presence checks happen at the HTTP edge.
func (AppliancePayload) Validate() error { return nil }

// WaterLevelPayload is the water lab state: a bounded tank percentage.
type WaterLevelPayload struct {
	LevelPercent float64
}

func (WaterLevelPayload) Kind() PayloadKind { return KindWaterLevel }

func (p WaterLevelPayload) Validate() error {
	if p.LevelPercent < 0 || p.LevelPercent > 100 {
		return fmt.Errorf("%w: levelPercent must be between 0 and 100", domerrors.ErrInvalidInput)
	}
	return nil
}

// ZeroPayload returns the type-appropriate zero value for a project with no
// entries: all actuators off, empty tank.
func ZeroPayload(kind PayloadKind) StatePayload {
	switch kind {
	case KindWaterLevel:
		return WaterLevelPayload{}
	default:
		return AppliancePayload{}
	}
}

// StateEntry is an append-only fact. Entries are never updated or merged;
// every accepted write is a new row, and rows are removed only by an explicit
// clear-history operation scoped to one (user, project) pair.
type StateEntry struct {
	ID        uuid.UUID
	UserID    UserID
	ProjectID ProjectID
	Payload   StatePayload
	Source    Source
	CreatedAt time.Time
}
