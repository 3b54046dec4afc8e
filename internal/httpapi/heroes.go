package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/roster"
)

func (h *Handler) heroes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getHeroes(w, r)
	case http.MethodPost:
		h.postHeroes(w, r)
	case http.MethodPut:
		h.putHeroes(w, r)
	case http.MethodDelete:
		h.deleteHeroes(w, r)
	default:
		h.methodNotAllowed(w)
	}
}

func (h *Handler) getHeroes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if id := q.Get("id"); id != "" {
		hero, err := h.roster.Get(r.Context(), id)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{"hero": hero})
		return
	}

	f := roster.Filter{
		Owner:  q.Get("owner"),
		Class:  q.Get("class"),
		Rarity: q.Get("rarity"),
		Limit:  queryInt(q.Get("limit"), 20),
		Offset: queryInt(q.Get("offset"), 0),
	}
	page, err := h.roster.List(r.Context(), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, page)
}

func (h *Handler) postHeroes(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	hero, err := h.roster.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rarity := string(hero.Rarity)
	message := fmt.Sprintf("%s %s created successfully!",
		strings.ToUpper(rarity[:1])+rarity[1:], hero.Class)
	h.writeData(w, http.StatusOK, map[string]any{
		"hero":    hero,
		"message": message,
	})
}

type heroUpdateBody struct {
	ID string `json:"id"`
	roster.Update
}

func (h *Handler) putHeroes(w http.ResponseWriter, r *http.Request) {
	var body heroUpdateBody
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, err)
		return
	}
	if body.ID == "" {
		h.writeError(w, apperrors.InvalidArgument("Hero ID required"))
		return
	}
	hero, err := h.roster.Update(r.Context(), body.ID, body.Update)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, map[string]any{
		"hero":    hero,
		"message": "Hero updated successfully",
	})
}

func (h *Handler) deleteHeroes(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, apperrors.InvalidArgument("Hero ID required"))
		return
	}
	msg, err := h.roster.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, map[string]any{"message": msg})
}
