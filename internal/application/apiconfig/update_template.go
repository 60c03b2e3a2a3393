package apiconfig

import (
	"context"
	"strings"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// UpdateTemplateInput is the replacement template label.
type UpdateTemplateInput struct {
	UserID     domain.UserID
	TemplateID string
}

// UpdateTemplate changes the template label on an existing binding. The API
// key itself is untouched.
type UpdateTemplate struct {
	bindings ports.BindingRepository
}

// NewUpdateTemplate builds the use case.
func NewUpdateTemplate(bindings ports.BindingRepository) *UpdateTemplate {
	return &UpdateTemplate{bindings: bindings}
}

// Execute updates the label; fails with ErrBindingNotFound when the user has
// not generated a key yet.
func (uc *UpdateTemplate) Execute(ctx context.Context, input UpdateTemplateInput) (*domain.Binding, error) {
	templateID := strings.TrimSpace(input.TemplateID)
	if templateID == "" {
		return nil, domerrors.ErrInvalidInput
	}
	return uc.bindings.UpdateTemplate(ctx, input.UserID, templateID)
}
