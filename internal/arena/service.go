// Package arena orchestrates battles: it owns the battle store, guards
// each battle with its own lock, and runs commands through the battle
// engine.
package arena

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// Store is the persistence contract the service depends on.
// Implementations return storage.ErrNotFound for missing battles.
type Store interface {
	Save(ctx context.Context, b *battle.Battle) error
	Get(ctx context.Context, id string) (*battle.Battle, error)
	List(ctx context.Context, f battle.Filter) ([]*battle.Battle, int, error)
}

// Service coordinates battle lifecycle and turn execution.
type Service struct {
	store  Store
	engine *battle.Engine
	ids    idgen.Generator
	clk    clock.Clock
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds an arena service.
func NewService(store Store, engine *battle.Engine, ids idgen.Generator, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		engine: engine,
		ids:    ids,
		clk:    clk,
		log:    log,
		locks:  map[string]*sync.Mutex{},
	}
}

// lockFor returns the mutex guarding one battle, creating it on first
// use. Actions on the same battle serialize; different battles do not
// contend.
func (s *Service) lockFor(battleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[battleID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[battleID] = l
	}
	return l
}

// CreateRequest starts a battle.
type CreateRequest struct {
	Participants []battle.ParticipantSeed `json:"participants"`
	Type         battle.Type              `json:"type,omitempty"`
	Environment  tables.Environment       `json:"environment,omitempty"`
}

// NextTurn identifies whose move comes next.
type NextTurn struct {
	HeroID   string `json:"hero_id"`
	HeroName string `json:"hero_name"`
}

// CreateResult is the payload of a successful battle creation.
type CreateResult struct {
	Battle   *battle.Battle `json:"battle"`
	Message  string         `json:"message"`
	NextTurn NextTurn       `json:"next_turn"`
}

// Create starts a new battle and persists it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	b, err := s.engine.CreateBattle(s.ids.Generate(), req.Participants, req.Type, req.Environment)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, "saving battle")
	}

	s.log.Info("battle created",
		zap.String("battle_id", b.ID),
		zap.String("type", string(b.Type)),
		zap.String("environment", string(b.Battlefield.Environment)),
		zap.Int("participants", len(b.Participants)))

	return &CreateResult{
		Battle:   b,
		Message:  fmt.Sprintf("Battle initiated in %s!", b.Battlefield.Environment),
		NextTurn: s.nextTurn(b),
	}, nil
}

// Get loads one battle.
func (s *Service) Get(ctx context.Context, id string) (*battle.Battle, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("Battle not found")
		}
		return nil, apperrors.Wrap(err, "loading battle")
	}
	return b, nil
}

// Page is one page of battles plus pagination metadata.
type Page struct {
	Battles []*battle.Battle `json:"battles"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	HasMore bool             `json:"has_more"`
}

// List returns the battles matching the filter, paginated.
func (s *Service) List(ctx context.Context, f battle.Filter) (*Page, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	battles, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing battles")
	}
	return &Page{
		Battles: battles,
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
		HasMore: f.Offset+f.Limit < total,
	}, nil
}

// ActionRequest applies one turn action to a battle.
type ActionRequest struct {
	BattleID string `json:"battle_id"`
	battle.ActionCommand
}

// ActionOutcome is the payload of an executed action.
type ActionOutcome struct {
	Battle      *battle.Battle `json:"battle"`
	Action      battle.Action  `json:"action"`
	BattleEnded bool           `json:"battle_ended"`
	NextTurn    *NextTurn      `json:"next_turn"`
	Message     string         `json:"message"`
}

// ExecuteAction runs one action under the battle's lock and persists
// the updated state.
//
// Invariant: concurrent actions against the same battle observe each
// other's effects; the store is only written under the battle lock.
func (s *Service) ExecuteAction(ctx context.Context, req ActionRequest) (*ActionOutcome, error) {
	if req.BattleID == "" {
		return nil, apperrors.InvalidArgument("battle_id required")
	}
	lock := s.lockFor(req.BattleID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.Get(ctx, req.BattleID)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.ExecuteAction(b, req.ActionCommand)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, "saving battle")
	}

	s.log.Info("battle action executed",
		zap.String("battle_id", b.ID),
		zap.String("hero_id", req.HeroID),
		zap.String("action_type", string(req.ActionType)),
		zap.Int("damage", res.Action.DamageDealt),
		zap.Bool("battle_ended", res.BattleEnded))

	outcome := &ActionOutcome{
		Battle:      b,
		Action:      res.Action,
		BattleEnded: res.BattleEnded,
		Message:     res.Message,
	}
	if !res.BattleEnded {
		nt := s.nextTurn(b)
		outcome.NextTurn = &nt
	}
	return outcome, nil
}

// AdminUpdate overwrites mutable battle fields. A zero status keeps
// the stored one.
type AdminUpdate struct {
	Status      battle.Status `json:"status,omitempty"`
	Winner      *string       `json:"winner,omitempty"`
	CurrentTurn *int          `json:"current_turn,omitempty"`
}

// Update applies an admin update under the battle lock.
func (s *Service) Update(ctx context.Context, battleID string, upd AdminUpdate) (*battle.Battle, error) {
	if battleID == "" {
		return nil, apperrors.InvalidArgument("battle_id required")
	}
	lock := s.lockFor(battleID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.Get(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if upd.Status != "" {
		b.Status = upd.Status
		if upd.Status == battle.StatusCompleted && b.CompletedAt == nil {
			now := s.clk.Now().UTC()
			b.CompletedAt = &now
		}
	}
	if upd.Winner != nil {
		b.Winner = *upd.Winner
	}
	if upd.CurrentTurn != nil {
		if *upd.CurrentTurn < 0 {
			return nil, apperrors.InvalidArgument("current_turn must be >= 0")
		}
		b.CurrentTurn = *upd.CurrentTurn
	}
	b.UpdatedAt = s.clk.Now().UTC()

	if err := s.store.Save(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, "saving battle")
	}
	s.log.Info("battle updated", zap.String("battle_id", b.ID), zap.String("status", string(b.Status)))
	return b, nil
}

func (s *Service) nextTurn(b *battle.Battle) NextTurn {
	id := b.TurnOwner()
	nt := NextTurn{HeroID: id}
	if p := b.Participant(id); p != nil {
		nt.HeroName = p.HeroName
	}
	return nt
}
