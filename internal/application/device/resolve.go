package device

import (
	"context"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// Resolver authenticates device calls: an opaque API key, optionally
// cross-checked against the bound template label so a multi-device owner can
// catch misconfigured firmware.
type Resolver struct {
	bindings ports.BindingRepository
}

// NewResolver builds the resolver over the binding store.
func NewResolver(bindings ports.BindingRepository) *Resolver {
	return &Resolver{bindings: bindings}
}

// Resolve maps apiKey to its binding. An empty key is ErrInvalidInput, an
// unknown key ErrInvalidAPIKey. When templateID is non-empty it must equal
// the bound template (ErrTemplateMismatch); when empty no check is made.
func (r *Resolver) Resolve(ctx context.Context, apiKey, templateID string) (*domain.Binding, error) {
	if apiKey == "" {
		return nil, domerrors.ErrInvalidInput
	}
	binding, err := r.bindings.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, domerrors.ErrInvalidAPIKey
	}
	if templateID != "" && templateID != binding.TemplateID {
		return nil, domerrors.ErrTemplateMismatch
	}
	return binding, nil
}
