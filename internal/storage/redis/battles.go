// Package redis provides Redis-backed stores. Entities are stored as
// JSON values with a set index per entity type for listing.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

const (
	battleKeyPrefix = "battle:"
	battleIndexKey  = "battles"
)

// BattleStore persists battles in Redis.
type BattleStore struct {
	client redis.UniversalClient
}

// NewBattleStore wraps an existing client. The caller owns the client
// lifecycle.
func NewBattleStore(client redis.UniversalClient) *BattleStore {
	return &BattleStore{client: client}
}

// NewClient dials a single Redis instance. Connection is lazy; Ping
// verifies reachability up front.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

func (s *BattleStore) Save(ctx context.Context, b *battle.Battle) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("redis: marshal battle %s: %w", b.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, battleKeyPrefix+b.ID, data, 0)
	pipe.SAdd(ctx, battleIndexKey, b.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: save battle %s: %w", b.ID, err)
	}
	return nil
}

func (s *BattleStore) Get(ctx context.Context, id string) (*battle.Battle, error) {
	data, err := s.client.Get(ctx, battleKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get battle %s: %w", id, err)
	}

	var b battle.Battle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("redis: unmarshal battle %s: %w", id, err)
	}
	return &b, nil
}

// List loads every indexed battle and filters in process. The index
// set stays small enough for a match server; move to sorted-set
// indexes if battle volume ever demands it.
func (s *BattleStore) List(ctx context.Context, f battle.Filter) ([]*battle.Battle, int, error) {
	ids, err := s.client.SMembers(ctx, battleIndexKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis: list battle ids: %w", err)
	}
	if len(ids) == 0 {
		return []*battle.Battle{}, 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = battleKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis: load battles: %w", err)
	}

	matched := make([]*battle.Battle, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a value, drop it lazily
			s.client.SRem(ctx, battleIndexKey, ids[i])
			continue
		}
		var b battle.Battle
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, 0, fmt.Errorf("redis: unmarshal battle %s: %w", ids[i], err)
		}
		if f.Matches(&b) {
			matched = append(matched, &b)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			matched = matched[:0]
		} else {
			matched = matched[f.Offset:]
		}
	}
	if f.Limit >= 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}
