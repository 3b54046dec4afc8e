package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/game/herogen"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

func (h *Handler) aiHeroes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAIHeroes(w, r)
	case http.MethodPost:
		h.postAIHeroes(w, r)
	default:
		h.methodNotAllowed(w)
	}
}

func (h *Handler) getAIHeroes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch q.Get("action") {
	case "options":
		h.writeData(w, http.StatusOK, herogen.GenerationOptions())
	case "preview":
		req := herogen.Request{
			Class:   tables.DisplayClass(q.Get("class")),
			Element: q.Get("element"),
			Rarity:  tables.Rarity(q.Get("rarity")),
		}
		hero, err := h.gen.Generate(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{
			"hero":    hero,
			"message": "Preview hero generated - not saved",
		})
	default:
		h.writeError(w, apperrors.InvalidArgument("Invalid action"))
	}
}

type generateBody struct {
	Action string `json:"action"`
	Count  int    `json:"count,omitempty"`
	herogen.Request
}

func (h *Handler) postAIHeroes(w http.ResponseWriter, r *http.Request) {
	var body generateBody
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, err)
		return
	}

	switch body.Action {
	case "generate_single":
		hero, err := h.gen.Generate(r.Context(), body.Request)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{
			"hero":            hero,
			"message":         fmt.Sprintf("Generated %s %s: %s", hero.Rarity, hero.Class, hero.Name),
			"generation_time": "2.3s",
			"ready_for_mint":  true,
		})

	case "generate_batch":
		count := body.Count
		if count < 1 {
			count = 1
		}
		heroes, err := h.gen.GenerateBatch(r.Context(), count, body.Request)
		if err != nil {
			h.writeError(w, err)
			return
		}
		totalPower := 0
		for _, hero := range heroes {
			totalPower += hero.Stats.CosmicPower
		}
		h.writeData(w, http.StatusOK, map[string]any{
			"heroes":          heroes,
			"count":           len(heroes),
			"message":         fmt.Sprintf("Generated %d cosmic heroes", len(heroes)),
			"generation_time": fmt.Sprintf("%.1fs", float64(len(heroes))*2.1),
			"total_power":     totalPower,
		})

	case "generate_themed":
		req := body.Request
		if req.Theme == "" {
			req.Theme = "cosmic_warrior"
		}
		if req.Inspiration == "" {
			req.Inspiration = "ancient_legends"
		}
		hero, err := h.gen.Generate(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{
			"hero":          hero,
			"theme":         body.Theme,
			"message":       fmt.Sprintf("Generated themed %s: %s", hero.Class, hero.Name),
			"unique_traits": len(hero.GeneratedPowers),
		})

	default:
		h.writeError(w, apperrors.InvalidArgument("Invalid generation action"))
	}
}
