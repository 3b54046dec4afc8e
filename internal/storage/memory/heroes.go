package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Gzeu/cosmic-legends-server/internal/roster"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// HeroStore keeps roster heroes in a map guarded by a RWMutex.
type HeroStore struct {
	mu     sync.RWMutex
	heroes map[string]*roster.Hero
}

// NewHeroStore builds an empty hero store.
func NewHeroStore() *HeroStore {
	return &HeroStore{heroes: map[string]*roster.Hero{}}
}

func (s *HeroStore) Save(_ context.Context, h *roster.Hero) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes[h.ID] = clone(h)
	return nil
}

func (s *HeroStore) Get(_ context.Context, id string) (*roster.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.heroes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(h), nil
}

// List returns matching heroes ordered oldest first, plus the total
// match count before pagination.
func (s *HeroStore) List(_ context.Context, f roster.Filter) ([]*roster.Hero, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*roster.Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		if f.Matches(h) {
			matched = append(matched, h)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	page := paginate(matched, f.Limit, f.Offset)
	out := make([]*roster.Hero, len(page))
	for i, h := range page {
		out[i] = clone(h)
	}
	return out, total, nil
}

func (s *HeroStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.heroes[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.heroes, id)
	return nil
}
