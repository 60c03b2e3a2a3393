package apiconfig

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// CreateBindingInput is the template label the owner picks for their firmware.
type CreateBindingInput struct {
	UserID     domain.UserID
	TemplateID string
}

// CreateBindingResult returns the binding and the plain API key (only time it
// is visible).
type CreateBindingResult struct {
	Binding *domain.Binding
	APIKey  string
}

// CreateBinding issues the one device credential a user may hold. A second
// issuance fails with ErrBindingExists; there is no rotation path.
type CreateBinding struct {
	bindings ports.BindingRepository
	genKey   ports.APIKeyGenerator
}

// NewCreateBinding builds the use case. genKey mints the credential; the
// composition root decides the source of randomness.
func NewCreateBinding(bindings ports.BindingRepository, genKey ports.APIKeyGenerator) *CreateBinding {
	return &CreateBinding{bindings: bindings, genKey: genKey}
}

// Execute mints the key and stores the binding.
func (uc *CreateBinding) Execute(ctx context.Context, input CreateBindingInput) (*CreateBindingResult, error) {
	templateID := strings.TrimSpace(input.TemplateID)
	if templateID == "" {
		return nil, domerrors.ErrInvalidInput
	}
	plainKey, err := uc.genKey()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	binding := &domain.Binding{
		ID:         uuid.New(),
		UserID:     input.UserID,
		APIKey:     plainKey,
		TemplateID: templateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.bindings.Create(ctx, binding); err != nil {
		return nil, err
	}
	return &CreateBindingResult{Binding: binding, APIKey: plainKey}, nil
}
