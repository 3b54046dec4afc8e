package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/roster"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
	"github.com/Gzeu/cosmic-legends-server/internal/storage/postgres"
	"github.com/Gzeu/cosmic-legends-server/internal/testutil"
)

func setupHeroRepo(t *testing.T) *postgres.HeroRepository {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewHeroRepository(pc.RawPool)
}

func makeTestHero(id, owner string) *roster.Hero {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &roster.Hero{
		ID:      id,
		Name:    "Zephyr",
		Title:   "the Cosmic Blade",
		Class:   tables.DisplayWarrior,
		Element: "Fire",
		Rarity:  tables.RarityRare,
		Level:   3,
		Stats: roster.CardStats{
			Health: 2000, Mana: 600, Attack: 800,
			Defense: 900, Speed: 500, CosmicPower: 2400,
		},
		Powers: []roster.Power{
			{ID: "p1", Name: "Flame Strike", Type: "attack", Element: "Fire", Damage: 320, Cooldown: 2, ManaCost: 40, Rarity: "rare"},
		},
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestHeroRepository_SaveGetRoundTrip(t *testing.T) {
	repo := setupHeroRepo(t)
	ctx := context.Background()

	h := makeTestHero("hero_1", "erd1alice")
	require.NoError(t, repo.Save(ctx, h))

	got, err := repo.Get(ctx, "hero_1")
	require.NoError(t, err)
	assert.Equal(t, h.Name, got.Name)
	assert.Equal(t, h.Class, got.Class)
	assert.Equal(t, h.Rarity, got.Rarity)
	assert.Equal(t, h.Stats, got.Stats)
	assert.Equal(t, h.Powers, got.Powers)
	assert.True(t, got.CreatedAt.Equal(h.CreatedAt))
}

func TestHeroRepository_GetMissing(t *testing.T) {
	repo := setupHeroRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHeroRepository_SaveUpserts(t *testing.T) {
	repo := setupHeroRepo(t)
	ctx := context.Background()

	h := makeTestHero("hero_1", "erd1alice")
	require.NoError(t, repo.Save(ctx, h))

	h.Level = 7
	h.Experience = 1500
	h.Owner = "erd1bob"
	h.UpdatedAt = h.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, h))

	got, err := repo.Get(ctx, "hero_1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Level)
	assert.Equal(t, 1500, got.Experience)
	assert.Equal(t, "erd1bob", got.Owner)
}

func TestHeroRepository_ListFiltersAndPaginates(t *testing.T) {
	repo := setupHeroRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		h := makeTestHero(fmt.Sprintf("hero_%d", i), "erd1alice")
		h.CreatedAt = h.CreatedAt.Add(time.Duration(i) * time.Minute)
		if i >= 3 {
			h.Owner = "erd1bob"
			h.Class = tables.DisplayMage
			h.Rarity = tables.RarityLegendary
		}
		require.NoError(t, repo.Save(ctx, h))
	}

	all, total, err := repo.List(ctx, roster.Filter{Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, all, 5)
	assert.Equal(t, "hero_0", all[0].ID)
	assert.Equal(t, "hero_4", all[4].ID)

	alices, total, err := repo.List(ctx, roster.Filter{Owner: "erd1alice", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, alices, 3)

	// class and rarity filters are case-insensitive
	mages, _, err := repo.List(ctx, roster.Filter{Class: "MAGE", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, mages, 2)

	legendaries, _, err := repo.List(ctx, roster.Filter{Rarity: "Legendary", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, legendaries, 2)

	page, total, err := repo.List(ctx, roster.Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "hero_2", page[0].ID)
	assert.Equal(t, "hero_3", page[1].ID)
}

func TestHeroRepository_Delete(t *testing.T) {
	repo := setupHeroRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeTestHero("hero_1", "erd1alice")))
	require.NoError(t, repo.Delete(ctx, "hero_1"))

	_, err := repo.Get(ctx, "hero_1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "hero_1"), storage.ErrNotFound)
}
