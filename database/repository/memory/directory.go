package memory

import (
	"context"
	"sync"

	"tourhub/models"
	"tourhub/utils"
)

// Directory holds the read-only records owned by other services: users,
// providers, tours and registrations. Tests and local runs seed it with Put*.
type Directory struct {
	mu            sync.RWMutex
	users         map[string]models.User
	providers     map[string]models.Provider
	tours         map[string]models.CustomTour
	registrations map[string]models.Registration
}

func NewDirectory() *Directory {
	return &Directory{
		users:         make(map[string]models.User),
		providers:     make(map[string]models.Provider),
		tours:         make(map[string]models.CustomTour),
		registrations: make(map[string]models.Registration),
	}
}

func (d *Directory) PutUser(u models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

func (d *Directory) PutProvider(p models.Provider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.providers[p.ID] = p
}

func (d *Directory) PutTour(t models.CustomTour) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tours[t.ID] = t
}

func (d *Directory) PutRegistration(r models.Registration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registrations[r.ID] = r
}

// Users exposes the directory as a user repository.
func (d *Directory) Users() *UserLookup { return &UserLookup{d} }

// Providers exposes the directory as a provider repository.
func (d *Directory) Providers() *ProviderLookup { return &ProviderLookup{d} }

// Tours exposes the directory as a tour repository.
func (d *Directory) Tours() *TourLookup { return &TourLookup{d} }

// Registrations exposes the directory as a registration repository.
func (d *Directory) Registrations() *RegistrationLookup { return &RegistrationLookup{d} }

type UserLookup struct{ d *Directory }

func (l *UserLookup) GetByID(ctx context.Context, id string) (*models.User, error) {
	l.d.mu.RLock()
	defer l.d.mu.RUnlock()
	u, ok := l.d.users[id]
	if !ok {
		return nil, utils.NotFound("user", id)
	}
	return &u, nil
}

type ProviderLookup struct{ d *Directory }

func (l *ProviderLookup) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	l.d.mu.RLock()
	defer l.d.mu.RUnlock()
	p, ok := l.d.providers[id]
	if !ok {
		return nil, utils.NotFound("provider", id)
	}
	return &p, nil
}

type TourLookup struct{ d *Directory }

func (l *TourLookup) GetByID(ctx context.Context, id string) (*models.CustomTour, error) {
	l.d.mu.RLock()
	defer l.d.mu.RUnlock()
	t, ok := l.d.tours[id]
	if !ok {
		return nil, utils.NotFound("tour", id)
	}
	return &t, nil
}

type RegistrationLookup struct{ d *Directory }

func (l *RegistrationLookup) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	l.d.mu.RLock()
	defer l.d.mu.RUnlock()
	r, ok := l.d.registrations[id]
	if !ok {
		return nil, utils.NotFound("registration", id)
	}
	return &r, nil
}
