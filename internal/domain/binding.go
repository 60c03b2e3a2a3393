package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// Binding maps a per-user API key (plus a free-form template label) to a user.
// It is the device-facing identity: firmware authenticates with the key alone,
// with no project scoping. At most one binding exists per user, and the key is
// never rotated in place.
type Binding struct {
	ID         uuid.UUID
	UserID     UserID
	APIKey     string
	TemplateID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// maskedVisible is how many trailing key characters stay readable.
const maskedVisible = 4

// MaskedKey returns the API key with all but the last 4 characters obscured.
// This is the only form shown after initial issuance.
func (b *Binding) MaskedKey() string {
	if len(b.APIKey) <= maskedVisible {
		return strings.Repeat("*", len(b.APIKey))
	}
	return strings.Repeat("*", len(b.APIKey)-maskedVisible) + b.APIKey[len(b.APIKey)-maskedVisible:]
}
