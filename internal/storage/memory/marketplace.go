package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Gzeu/cosmic-legends-server/internal/marketplace"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// MarketStore keeps listings and their bids in memory.
type MarketStore struct {
	mu       sync.RWMutex
	listings map[string]*marketplace.Listing
	bids     map[string][]*marketplace.Bid
}

// NewMarketStore builds an empty marketplace store.
func NewMarketStore() *MarketStore {
	return &MarketStore{
		listings: map[string]*marketplace.Listing{},
		bids:     map[string][]*marketplace.Bid{},
	}
}

func (s *MarketStore) SaveListing(_ context.Context, l *marketplace.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = clone(l)
	return nil
}

func (s *MarketStore) GetListing(_ context.Context, id string) (*marketplace.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(l), nil
}

// ListListings returns matching listings sorted per the filter, plus
// the total match count before pagination. SortBy accepts created_at,
// price, and hero_level; anything else falls back to created_at.
func (s *MarketStore) ListListings(_ context.Context, f marketplace.Filter) ([]*marketplace.Listing, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*marketplace.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.HeroClass != "" && !strings.EqualFold(l.HeroClass, f.HeroClass) {
			continue
		}
		if f.Rarity != "" && !strings.EqualFold(l.HeroRarity, f.Rarity) {
			continue
		}
		matched = append(matched, l)
	}

	less := listingLess(f.SortBy)
	asc := strings.EqualFold(f.SortOrder, "asc")
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})

	total := len(matched)
	page := paginate(matched, f.Limit, f.Offset)
	out := make([]*marketplace.Listing, len(page))
	for i, l := range page {
		out[i] = clone(l)
	}
	return out, total, nil
}

func listingLess(sortBy string) func(a, b *marketplace.Listing) bool {
	switch sortBy {
	case "price":
		return func(a, b *marketplace.Listing) bool {
			return priceValue(a) < priceValue(b)
		}
	case "hero_level":
		return func(a, b *marketplace.Listing) bool {
			return a.HeroLevel < b.HeroLevel
		}
	default:
		return func(a, b *marketplace.Listing) bool {
			if a.CreatedAt.Equal(b.CreatedAt) {
				return a.ID < b.ID
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}

func priceValue(l *marketplace.Listing) float64 {
	v, err := strconv.ParseFloat(l.Price.Amount, 64)
	if err != nil {
		return 0
	}
	return v
}

func (s *MarketStore) SaveBid(_ context.Context, b *marketplace.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.bids[b.ListingID]
	for i, prev := range existing {
		if prev.ID == b.ID {
			existing[i] = clone(b)
			return nil
		}
	}
	s.bids[b.ListingID] = append(existing, clone(b))
	return nil
}

func (s *MarketStore) ListBids(_ context.Context, listingID string) ([]*marketplace.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.bids[listingID]
	out := make([]*marketplace.Bid, len(stored))
	for i, b := range stored {
		out[i] = clone(b)
	}
	return out, nil
}
