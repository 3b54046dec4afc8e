package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/marketplace"
)

func (h *Handler) marketplace(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getMarketplace(w, r)
	case http.MethodPost:
		h.postMarketplace(w, r)
	default:
		h.methodNotAllowed(w)
	}
}

func (h *Handler) getMarketplace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch q.Get("action") {
	case "stats":
		stats, err := h.market.Stats(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, stats)

	case "listing":
		id := q.Get("listing_id")
		if id == "" {
			h.writeError(w, apperrors.InvalidArgument("Listing ID required"))
			return
		}
		detail, err := h.market.GetListing(r.Context(), id)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, detail)

	default:
		f := marketplace.Filter{
			HeroClass: q.Get("class"),
			Rarity:    q.Get("rarity"),
			SortBy:    q.Get("sort_by"),
			SortOrder: q.Get("sort_order"),
			Limit:     queryInt(q.Get("limit"), 20),
			Offset:    queryInt(q.Get("offset"), 0),
		}
		page, err := h.market.Browse(r.Context(), f)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, page)
	}
}

// postMarketplace decodes the body twice: once for the action
// discriminator and once into the request type the action expects.
// Embedding the request structs instead would collide on shared field
// names like listing_id.
func (h *Handler) postMarketplace(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, apperrors.InvalidArgument("unreadable request body"))
		return
	}
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
		return
	}

	switch head.Action {
	case "create_listing":
		var req marketplace.CreateListingRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
			return
		}
		l, err := h.market.CreateListing(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{
			"listing": l,
			"message": "Hero listed successfully on the marketplace",
		})

	case "place_bid":
		var req marketplace.PlaceBidRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
			return
		}
		res, err := h.market.PlaceBid(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, res)

	case "purchase":
		var req marketplace.PurchaseRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
			return
		}
		res, err := h.market.Purchase(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, res)

	case "cancel_listing":
		var req marketplace.CancelRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.writeError(w, apperrors.InvalidArgument("invalid JSON body"))
			return
		}
		msg, err := h.market.Cancel(r.Context(), req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeData(w, http.StatusOK, map[string]any{"message": msg})

	default:
		h.writeError(w, apperrors.InvalidArgument("Invalid action"))
	}
}
