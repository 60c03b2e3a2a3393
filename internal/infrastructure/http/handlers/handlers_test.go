package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/labcloud/internal/application/apiconfig"
	"github.com/amirhosseinghanipour/labcloud/internal/application/device"
	"github.com/amirhosseinghanipour/labcloud/internal/application/state"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/security"
)

// testEnv wires the handlers over the in-memory store, the same composition
// main performs over postgres.
type testEnv struct {
	store      *memory.Store
	appliances *ApplianceHandler
	water      *WaterLevelHandler
	devices    *DeviceHandler
	apiConfig  *APIConfigHandler
	userID     domain.UserID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	projects := memory.ProjectStore{Store: store}
	bindings := memory.BindingStore{Store: store}
	states := memory.StateStore{Store: store}
	progress := memory.ProgressStore{Store: store}

	ctx := context.Background()
	appliancesProject := &domain.Project{
		ID:    domain.NewProjectID(uuid.New()),
		Key:   ProjectKeyAppliances,
		Title: "Home Appliances",
		Type:  domain.KindAppliance,
	}
	waterProject := &domain.Project{
		ID:    domain.NewProjectID(uuid.New()),
		Key:   ProjectKeyWaterLevel,
		Title: "Water Level Monitoring",
		Type:  domain.KindWaterLevel,
	}
	require.NoError(t, store.Create(ctx, appliancesProject))
	require.NoError(t, store.Create(ctx, waterProject))

	userID := domain.NewUserID(uuid.New())
	store.SeedProgress(userID, appliancesProject.ID, domain.StatusNotStarted)
	store.SeedProgress(userID, waterProject.ID, domain.StatusNotStarted)

	log := zerolog.Nop()
	write := state.NewWriteState(projects, states, progress, log)
	read := state.NewReadState(projects, states)
	clear := state.NewClearHistory(projects, states)
	resolver := device.NewResolver(bindings)
	create := apiconfig.NewCreateBinding(bindings, security.GenerateAPIKey)
	update := apiconfig.NewUpdateTemplate(bindings)

	return &testEnv{
		store:      store,
		appliances: NewApplianceHandler(write, read, clear, log),
		water:      NewWaterLevelHandler(write, read, clear, log),
		devices:    NewDeviceHandler(resolver, write, read, log),
		apiConfig:  NewAPIConfigHandler(create, update, bindings, log),
		userID:     userID,
	}
}

// seedBinding provisions a device credential for the fixture user.
func (e *testEnv) seedBinding(t *testing.T, apiKey, templateID string) {
	t.Helper()
	require.NoError(t, e.store.CreateBinding(context.Background(), &domain.Binding{
		ID:         uuid.New(),
		UserID:     e.userID,
		APIKey:     apiKey,
		TemplateID: templateID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}))
}

// sessionRequest builds a request carrying the fixture user, the way the
// session middleware would after verifying a bearer token.
func (e *testEnv) sessionRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithUser(req.Context(), e.userID))
}
