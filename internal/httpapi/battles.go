package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/arena"
	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
)

func (h *Handler) battles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getBattles(w, r)
	case http.MethodPost:
		h.postBattles(w, r)
	case http.MethodPut:
		h.putBattles(w, r)
	default:
		h.methodNotAllowed(w)
	}
}

func (h *Handler) getBattles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if battleID := q.Get("battle_id"); battleID != "" {
		b, err := h.arena.Get(r.Context(), battleID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{"battle": b})
		return
	}

	f := battle.Filter{
		PlayerID: q.Get("player_id"),
		Status:   battle.Status(q.Get("status")),
		Type:     battle.Type(q.Get("type")),
		Limit:    queryInt(q.Get("limit"), 20),
		Offset:   queryInt(q.Get("offset"), 0),
	}
	page, err := h.arena.List(r.Context(), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, page)
}

type battleActionBody struct {
	Action string `json:"action"`
	arena.CreateRequest
	arena.ActionRequest
}

func (h *Handler) postBattles(w http.ResponseWriter, r *http.Request) {
	var body battleActionBody
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	switch body.Action {
	case "create_battle":
		res, err := h.arena.Create(r.Context(), body.CreateRequest)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, res)
	case "execute_action":
		out, err := h.arena.ExecuteAction(r.Context(), body.ActionRequest)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, out)
	default:
		h.writeError(w, apperrors.InvalidArgument("Invalid action"))
	}
}

type battleUpdateBody struct {
	BattleID string `json:"battle_id"`
	arena.AdminUpdate
}

func (h *Handler) putBattles(w http.ResponseWriter, r *http.Request) {
	var body battleUpdateBody
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, err)
		return
	}
	b, err := h.arena.Update(r.Context(), body.BattleID, body.AdminUpdate)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, map[string]any{
		"battle":  b,
		"message": "Battle updated successfully",
	})
}

// queryInt parses a query parameter, falling back on empty or bad
// input.
func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
