package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/arena"
	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/herogen"
	"github.com/Gzeu/cosmic-legends-server/internal/httpapi"
	"github.com/Gzeu/cosmic-legends-server/internal/marketplace"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
	"github.com/Gzeu/cosmic-legends-server/internal/roster"
	"github.com/Gzeu/cosmic-legends-server/internal/storage/memory"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop()
	clk := clock.Fixed{T: testTime}
	src := dice.NewCryptoSource()

	arenaSvc := arena.NewService(
		memory.NewBattleStore(),
		battle.NewEngine(src, idgen.NewSequential("action"), clk),
		idgen.NewSequential("battle"), clk, log,
	)
	rosterSvc := roster.NewService(
		memory.NewHeroStore(), src, idgen.NewSequential("hero"), clk, log,
	)
	marketSvc := marketplace.NewService(
		memory.NewMarketStore(),
		idgen.NewSequential("listing"), idgen.NewSequential("bid"), clk, log,
	)
	gen := herogen.New(src, idgen.NewSequential("gen"), clk, herogen.DefaultLibrary(), nil)

	srv := httptest.NewServer(httpapi.New(arenaSvc, rosterSvc, marketSvc, gen, log).Router())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, url string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, env := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestHeroes_CreateGetListDelete(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/heroes", map[string]any{
		"name":    "Zephyr",
		"title":   "the Cosmic Blade",
		"class":   "Warrior",
		"element": "Fire",
		"owner":   "erd1alice",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var created struct {
		Hero    roster.Hero `json:"hero"`
		Message string      `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.Hero.ID)
	assert.Contains(t, created.Message, "Warrior created successfully!")

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/heroes?id="+created.Hero.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched struct {
		Hero roster.Hero `json:"hero"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Zephyr", fetched.Hero.Name)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/heroes?owner=erd1alice", nil)
	require.Equal(t, http.StatusOK, status)
	var page roster.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)

	status, env = doJSON(t, http.MethodDelete, srv.URL+"/api/heroes?id="+created.Hero.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	assert.Equal(t, "Hero Zephyr has been removed from the cosmic realm", deleted.Message)
}

func TestHeroes_ErrorsMapToStatus(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/heroes?id=missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Hero not found", env.Error)

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/heroes", map[string]any{
		"name": "Zephyr",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "missing required fields", env.Error)

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/heroes", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBattles_CreateExecuteFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/battles", map[string]any{
		"action": "create_battle",
		"participants": []map[string]any{
			{"player_id": "alice", "hero_id": "h1", "hero_name": "Zephyr"},
			{"player_id": "bob", "hero_id": "h2", "hero_name": "Orion"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var created arena.CreateResult
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Contains(t, created.Message, "Battle initiated in")
	require.NotEmpty(t, created.NextTurn.HeroID)

	first := created.NextTurn.HeroID
	var player, target string
	for _, p := range created.Battle.Participants {
		if p.HeroID == first {
			player = p.PlayerID
		} else {
			target = p.HeroID
		}
	}

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/battles", map[string]any{
		"action":      "execute_action",
		"battle_id":   created.Battle.ID,
		"player_id":   player,
		"hero_id":     first,
		"action_type": "attack",
		"target_id":   target,
	})
	require.Equal(t, http.StatusOK, status)
	var out arena.ActionOutcome
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Greater(t, out.Action.DamageDealt, 0)
	assert.Equal(t, 1, out.Battle.CurrentTurn)

	// acting out of turn is rejected
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/battles", map[string]any{
		"action":      "execute_action",
		"battle_id":   created.Battle.ID,
		"player_id":   player,
		"hero_id":     first,
		"action_type": "attack",
		"target_id":   target,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/battles?battle_id="+created.Battle.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Battle battle.Battle `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Len(t, detail.Battle.Actions, 1)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/battles?player_id=alice", nil)
	require.Equal(t, http.StatusOK, status)
	var page arena.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)
}

func TestBattles_AdminUpdate(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/battles", map[string]any{
		"action": "create_battle",
		"participants": []map[string]any{
			{"player_id": "alice", "hero_id": "h1"},
			{"player_id": "bob", "hero_id": "h2"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	var created arena.CreateResult
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/battles", map[string]any{
		"battle_id": created.Battle.ID,
		"status":    "cancelled",
	})
	require.Equal(t, http.StatusOK, status)
	var updated struct {
		Battle battle.Battle `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, battle.StatusCancelled, updated.Battle.Status)
}

func TestBattles_InvalidAction(t *testing.T) {
	srv := newTestServer(t)
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/battles", map[string]any{
		"action": "dance",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid action", env.Error)
}

func TestAIHeroes_OptionsAndPreview(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/ai/heroes?action=options", nil)
	require.Equal(t, http.StatusOK, status)
	var opts herogen.Options
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Len(t, opts.Classes, 4)
	assert.Equal(t, "60%", opts.Rarities["common"].Chance)
	assert.Equal(t, "2.0 EGLD", opts.GenerationCost["legendary"])

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/ai/heroes?action=preview&class=Mage&rarity=epic", nil)
	require.Equal(t, http.StatusOK, status)
	var preview struct {
		Hero    herogen.GeneratedHero `json:"hero"`
		Message string                `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, "Mage", preview.Hero.Class)
	assert.Equal(t, "epic", preview.Hero.Rarity)
	assert.Equal(t, "Preview hero generated - not saved", preview.Message)

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/ai/heroes?action=mystery", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAIHeroes_GenerateSingleAndBatch(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/ai/heroes", map[string]any{
		"action": "generate_single",
		"class":  "Warrior",
	})
	require.Equal(t, http.StatusOK, status)
	var single struct {
		Hero           herogen.GeneratedHero `json:"hero"`
		Message        string                `json:"message"`
		ReadyForMint   bool                  `json:"ready_for_mint"`
		GenerationTime string                `json:"generation_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &single))
	assert.Equal(t, "Warrior", single.Hero.Class)
	assert.True(t, single.ReadyForMint)
	assert.Equal(t, "2.3s", single.GenerationTime)

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/ai/heroes", map[string]any{
		"action": "generate_batch",
		"count":  3,
	})
	require.Equal(t, http.StatusOK, status)
	var batch struct {
		Heroes     []herogen.GeneratedHero `json:"heroes"`
		Count      int                     `json:"count"`
		TotalPower int                     `json:"total_power"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &batch))
	assert.Equal(t, 3, batch.Count)
	require.Len(t, batch.Heroes, 3)
	wantPower := 0
	for _, hero := range batch.Heroes {
		wantPower += hero.Stats.CosmicPower
	}
	assert.Equal(t, wantPower, batch.TotalPower)

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/ai/heroes", map[string]any{
		"action": "generate_themed",
		"theme":  "void_reaper",
	})
	require.Equal(t, http.StatusOK, status)
	var themed struct {
		Theme        string `json:"theme"`
		UniqueTraits int    `json:"unique_traits"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &themed))
	assert.Equal(t, "void_reaper", themed.Theme)
	assert.GreaterOrEqual(t, themed.UniqueTraits, 2)
}

func TestMarketplace_FullFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/marketplace", map[string]any{
		"action":         "create_listing",
		"nft_id":         "COSMIC-abc-01",
		"hero_id":        "hero_1",
		"seller_address": "erd1seller",
		"hero_name":      "Zephyr",
		"price":          "1.5",
		"listing_type":   "auction",
		"duration":       3,
	})
	require.Equal(t, http.StatusOK, status)
	var created struct {
		Listing marketplace.Listing `json:"listing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Listing.ID)

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/marketplace", map[string]any{
		"action":         "place_bid",
		"listing_id":     created.Listing.ID,
		"bidder_address": "erd1bidder",
		"amount":         "2.0",
	})
	require.Equal(t, http.StatusOK, status)
	var bid marketplace.BidResult
	require.NoError(t, json.Unmarshal(env.Data, &bid))
	assert.True(t, bid.IsHighest)

	status, env = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/marketplace?action=listing&listing_id=%s", srv.URL, created.Listing.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var detail marketplace.ListingDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Bids, 1)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/marketplace", nil)
	require.Equal(t, http.StatusOK, status)
	var page marketplace.ListingsPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/marketplace?action=stats", nil)
	require.Equal(t, http.StatusOK, status)
	var stats marketplace.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalListings)

	// cancel by someone other than the seller is forbidden
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/marketplace", map[string]any{
		"action":         "cancel_listing",
		"listing_id":     created.Listing.ID,
		"seller_address": "erd1impostor",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, env.Success)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	status, env := doJSON(t, http.MethodDelete, srv.URL+"/api/battles", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.False(t, env.Success)
}
