package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/domain"
	domerrors "github.com/amirhosseinghanipour/labcloud/internal/domain/errors"
)

// Store is an in-memory implementation of every repository port, suitable
// for tests and single-process experiments. Postgres is the production
// store.
type Store struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project // by key
	bindings map[string]*domain.Binding // by user id
	entries  []*domain.StateEntry
	progress map[string]*domain.ProjectProgress // by user:project
}

func NewStore() *Store {
	return &Store{
		projects: make(map[string]*domain.Project),
		bindings: make(map[string]*domain.Binding),
		progress: make(map[string]*domain.ProjectProgress),
	}
}

func pairKey(userID domain.UserID, projectID domain.ProjectID) string {
	return userID.String() + ":" + projectID.String()
}

// Projects

func (s *Store) Create(ctx context.Context, project *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *project
	s.projects[project.Key] = &p
	return nil
}

func (s *Store) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == projectID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) GetByKey(ctx context.Context, key string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[key]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Bindings

func (s *Store) CreateBinding(ctx context.Context, binding *domain.Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bindings[binding.UserID.String()]; exists {
		return domerrors.ErrBindingExists
	}
	b := *binding
	s.bindings[binding.UserID.String()] = &b
	return nil
}

func (s *Store) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bindings[userID.String()]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *Store) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bindings {
		if b.APIKey == apiKey {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, userID domain.UserID, templateID string) (*domain.Binding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bindings[userID.String()]
	if !ok {
		return nil, domerrors.ErrBindingNotFound
	}
	b.TemplateID = templateID
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

// State entries

func (s *Store) Append(ctx context.Context, project *domain.Project, entry *domain.StateEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *entry
	s.entries = append(s.entries, &e)
	return nil
}

func (s *Store) ListEntries(ctx context.Context, project *domain.Project, userID domain.UserID) ([]*domain.StateEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.StateEntry
	for _, e := range s.entries {
		if e.UserID == userID && e.ProjectID == project.ID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) Latest(ctx context.Context, project *domain.Project, userID domain.UserID) (*domain.StateEntry, error) {
	entries, err := s.ListEntries(ctx, project, userID)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[0], nil
}

func (s *Store) Clear(ctx context.Context, project *domain.Project, userID domain.UserID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*domain.StateEntry
	var removed int64
	for _, e := range s.entries {
		if e.UserID == userID && e.ProjectID == project.ID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed, nil
}

// Progress

// SeedProgress provisions a progress row, mirroring what enrollment does in
// production.
func (s *Store) SeedProgress(userID domain.UserID, projectID domain.ProjectID, status domain.ProgressStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[pairKey(userID, projectID)] = &domain.ProjectProgress{
		UserID:    userID,
		ProjectID: projectID,
		Status:    status,
	}
}

func (s *Store) SetStatus(ctx context.Context, userID domain.UserID, projectID domain.ProjectID, status domain.ProgressStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[pairKey(userID, projectID)]
	if !ok {
		return domerrors.ErrProgressNotFound
	}
	p.Status = status
	p.LastActivityAt = at
	return nil
}

func (s *Store) Get(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.ProjectProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[pairKey(userID, projectID)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// projectStore, bindingStore, stateStore and progressStore adapt one Store
// to the individual ports so a single instance can back all four.

type ProjectStore struct{ *Store }
type BindingStore struct{ *Store }
type StateStore struct{ *Store }
type ProgressStore struct{ *Store }

func (s BindingStore) Create(ctx context.Context, binding *domain.Binding) error {
	return s.Store.CreateBinding(ctx, binding)
}

func (s StateStore) List(ctx context.Context, project *domain.Project, userID domain.UserID) ([]*domain.StateEntry, error) {
	return s.Store.ListEntries(ctx, project, userID)
}

var (
	_ ports.ProjectRepository  = ProjectStore{}
	_ ports.BindingRepository  = BindingStore{}
	_ ports.StateRepository    = StateStore{}
	_ ports.ProgressRepository = ProgressStore{}
)
