package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/hero"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// Store is the persistence contract the service depends on.
// Implementations return storage.ErrNotFound for missing heroes.
type Store interface {
	Save(ctx context.Context, h *Hero) error
	Get(ctx context.Context, id string) (*Hero, error)
	List(ctx context.Context, f Filter) ([]*Hero, int, error)
	Delete(ctx context.Context, id string) error
}

// Service implements hero collection operations.
type Service struct {
	store Store
	src   dice.Source
	ids   idgen.Generator
	clk   clock.Clock
	log   *zap.Logger
}

// NewService builds a roster service.
func NewService(store Store, src dice.Source, ids idgen.Generator, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{store: store, src: src, ids: ids, clk: clk, log: log}
}

// CreateRequest carries the caller-supplied fields of a new hero.
type CreateRequest struct {
	Name    string              `json:"name"`
	Title   string              `json:"title"`
	Class   tables.DisplayClass `json:"class"`
	Element string              `json:"element"`
	Owner   string              `json:"owner"`
}

// Create mints a new level 1 hero. Rarity is rolled on the creation
// weights and the stat card follows class and rarity.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Hero, error) {
	if req.Name == "" || req.Title == "" || req.Class == "" || req.Element == "" || req.Owner == "" {
		return nil, apperrors.InvalidArgument("missing required fields")
	}
	if !tables.ValidDisplayClass(req.Class) {
		return nil, apperrors.InvalidArgumentf("unknown hero class %q", req.Class)
	}
	if err := hero.ValidateName(req.Name); err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}

	rarity := RollCreationRarity(s.src)
	now := s.clk.Now().UTC()
	h := &Hero{
		ID:         s.ids.Generate(),
		Name:       req.Name,
		Title:      req.Title,
		Class:      req.Class,
		Element:    req.Element,
		Rarity:     rarity,
		Level:      1,
		Experience: 0,
		Stats:      BuildStats(req.Class, rarity),
		Powers:     []Power{},
		Owner:      req.Owner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, h); err != nil {
		return nil, apperrors.Wrap(err, "saving hero")
	}

	s.log.Info("hero created",
		zap.String("hero_id", h.ID),
		zap.String("class", string(h.Class)),
		zap.String("rarity", string(h.Rarity)),
		zap.String("owner", h.Owner))
	return h, nil
}

// Get loads one hero.
func (s *Service) Get(ctx context.Context, id string) (*Hero, error) {
	h, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("Hero not found")
		}
		return nil, apperrors.Wrap(err, "loading hero")
	}
	return h, nil
}

// Page is one page of heroes plus pagination metadata.
type Page struct {
	Heroes  []*Hero `json:"heroes"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	HasMore bool    `json:"has_more"`
}

// List returns the heroes matching the filter, paginated.
func (s *Service) List(ctx context.Context, f Filter) (*Page, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	heroes, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing heroes")
	}
	return &Page{
		Heroes:  heroes,
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
		HasMore: f.Offset+f.Limit < total,
	}, nil
}

// Update is a partial update. Nil fields keep their stored values.
type Update struct {
	Name       *string    `json:"name,omitempty"`
	Title      *string    `json:"title,omitempty"`
	Level      *int       `json:"level,omitempty"`
	Experience *int       `json:"experience,omitempty"`
	Stats      *CardStats `json:"stats,omitempty"`
	Powers     *[]Power   `json:"powers,omitempty"`
	Owner      *string    `json:"owner,omitempty"`
	NFTID      *string    `json:"nft_id,omitempty"`
}

// Update applies a partial update to the hero and bumps updated_at.
func (s *Service) Update(ctx context.Context, id string, upd Update) (*Hero, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if err := hero.ValidateName(*upd.Name); err != nil {
			return nil, apperrors.InvalidArgument(err.Error())
		}
		h.Name = *upd.Name
	}
	if upd.Title != nil {
		h.Title = *upd.Title
	}
	if upd.Level != nil {
		if *upd.Level < 1 {
			return nil, apperrors.InvalidArgument("level must be >= 1")
		}
		h.Level = *upd.Level
	}
	if upd.Experience != nil {
		if *upd.Experience < 0 {
			return nil, apperrors.InvalidArgument("experience must be >= 0")
		}
		h.Experience = *upd.Experience
	}
	if upd.Stats != nil {
		h.Stats = *upd.Stats
	}
	if upd.Powers != nil {
		h.Powers = *upd.Powers
	}
	if upd.Owner != nil {
		h.Owner = *upd.Owner
	}
	if upd.NFTID != nil {
		h.NFTID = *upd.NFTID
	}
	h.UpdatedAt = s.clk.Now().UTC()

	if err := s.store.Save(ctx, h); err != nil {
		return nil, apperrors.Wrap(err, "saving hero")
	}
	return h, nil
}

// Delete removes the hero and returns its farewell message.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperrors.NotFound("Hero not found")
		}
		return "", apperrors.Wrap(err, "deleting hero")
	}
	s.log.Info("hero deleted", zap.String("hero_id", id))
	return fmt.Sprintf("Hero %s has been removed from the cosmic realm", h.Name), nil
}
