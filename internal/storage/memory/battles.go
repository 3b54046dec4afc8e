package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// BattleStore keeps battles in a map guarded by a RWMutex.
type BattleStore struct {
	mu      sync.RWMutex
	battles map[string]*battle.Battle
}

// NewBattleStore builds an empty battle store.
func NewBattleStore() *BattleStore {
	return &BattleStore{battles: map[string]*battle.Battle{}}
}

func (s *BattleStore) Save(_ context.Context, b *battle.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[b.ID] = clone(b)
	return nil
}

func (s *BattleStore) Get(_ context.Context, id string) (*battle.Battle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.battles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(b), nil
}

// List returns matching battles ordered oldest first, plus the total
// match count before pagination.
func (s *BattleStore) List(_ context.Context, f battle.Filter) ([]*battle.Battle, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*battle.Battle, 0, len(s.battles))
	for _, b := range s.battles {
		if f.Matches(b) {
			matched = append(matched, b)
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
	out := make([]*battle.Battle, len(page))
	for i, b := range page {
		out[i] = clone(b)
	}
	return out, total, nil
}
