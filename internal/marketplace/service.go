package marketplace

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
	"github.com/Gzeu/cosmic-legends-server/internal/storage"
)

// Store is the persistence contract the service depends on.
// Implementations return storage.ErrNotFound for missing listings.
type Store interface {
	SaveListing(ctx context.Context, l *Listing) error
	GetListing(ctx context.Context, id string) (*Listing, error)
	ListListings(ctx context.Context, f Filter) ([]*Listing, int, error)
	SaveBid(ctx context.Context, b *Bid) error
	ListBids(ctx context.Context, listingID string) ([]*Bid, error)
}

// Service implements marketplace operations.
type Service struct {
	store      Store
	listingIDs idgen.Generator
	bidIDs     idgen.Generator
	clk        clock.Clock
	log        *zap.Logger
}

// NewService builds a marketplace service.
func NewService(store Store, listingIDs, bidIDs idgen.Generator, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{store: store, listingIDs: listingIDs, bidIDs: bidIDs, clk: clk, log: log}
}

// CreateListingRequest lists one hero for sale.
type CreateListingRequest struct {
	NFTID         string         `json:"nft_id"`
	HeroID        string         `json:"hero_id"`
	SellerAddress string         `json:"seller_address"`
	SellerName    string         `json:"seller_name,omitempty"`
	HeroName      string         `json:"hero_name,omitempty"`
	HeroClass     string         `json:"hero_class,omitempty"`
	HeroRarity    string         `json:"hero_rarity,omitempty"`
	HeroLevel     int            `json:"hero_level,omitempty"`
	HeroPower     int            `json:"hero_power,omitempty"`
	Price         string         `json:"price"`
	Token         string         `json:"token,omitempty"`
	ListingType   ListingType    `json:"listing_type,omitempty"`
	DurationDays  int            `json:"duration,omitempty"`
	Image         string         `json:"image,omitempty"`
	Description   string         `json:"description,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty"`
}

// CreateListing publishes a listing. Auctions with a duration get an
// expiry; display fields default when omitted.
func (s *Service) CreateListing(ctx context.Context, req CreateListingRequest) (*Listing, error) {
	if req.NFTID == "" || req.HeroID == "" || req.Price == "" || req.SellerAddress == "" {
		return nil, apperrors.InvalidArgument("Missing required listing data")
	}
	if _, err := strconv.ParseFloat(req.Price, 64); err != nil {
		return nil, apperrors.InvalidArgumentf("unparseable price %q", req.Price)
	}

	listingType := req.ListingType
	if listingType == "" {
		listingType = ListingFixedPrice
	}
	switch listingType {
	case ListingFixedPrice, ListingAuction:
	default:
		return nil, apperrors.InvalidArgumentf("unknown listing type %q", listingType)
	}

	l := &Listing{
		ID:            s.listingIDs.Generate(),
		NFTID:         req.NFTID,
		HeroID:        req.HeroID,
		SellerAddress: req.SellerAddress,
		SellerName:    req.SellerName,
		HeroName:      orDefault(req.HeroName, "Unknown Hero"),
		HeroClass:     orDefault(req.HeroClass, "Warrior"),
		HeroRarity:    orDefault(req.HeroRarity, "common"),
		HeroLevel:     orDefaultInt(req.HeroLevel, 1),
		HeroPower:     orDefaultInt(req.HeroPower, 1000),
		Price:         Price{Amount: req.Price, Token: orDefault(req.Token, "EGLD")},
		ListingType:   listingType,
		Status:        StatusActive,
		CreatedAt:     s.clk.Now().UTC(),
		Metadata: Metadata{
			Image:       orDefault(req.Image, "https://cosmic-legends.s3.amazonaws.com/heroes/default.png"),
			Description: orDefault(req.Description, "A legendary cosmic hero"),
			Attributes:  orDefaultAttrs(req.Attributes),
		},
	}
	if listingType == ListingAuction && req.DurationDays > 0 {
		exp := l.CreatedAt.Add(time.Duration(req.DurationDays) * 24 * time.Hour)
		l.ExpiresAt = &exp
	}

	if err := s.store.SaveListing(ctx, l); err != nil {
		return nil, apperrors.Wrap(err, "saving listing")
	}
	s.log.Info("listing created",
		zap.String("listing_id", l.ID),
		zap.String("type", string(l.ListingType)),
		zap.String("price", l.Price.Amount))
	return l, nil
}

// ListingDetail bundles a listing with its bid history.
type ListingDetail struct {
	Listing    *Listing `json:"listing"`
	Bids       []*Bid   `json:"bids"`
	HighestBid *Bid     `json:"highest_bid"`
}

// GetListing loads a listing; auctions include bids sorted highest
// first.
func (s *Service) GetListing(ctx context.Context, id string) (*ListingDetail, error) {
	l, err := s.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ListingDetail{Listing: l, Bids: []*Bid{}}
	if l.ListingType == ListingAuction {
		bids, err := s.store.ListBids(ctx, id)
		if err != nil {
			return nil, apperrors.Wrap(err, "loading bids")
		}
		sort.Slice(bids, func(i, j int) bool { return bids[i].AmountValue() > bids[j].AmountValue() })
		detail.Bids = bids
		if len(bids) > 0 {
			detail.HighestBid = bids[0]
		}
	}
	return detail, nil
}

// ListingsPage is one page of listings plus query echo.
type ListingsPage struct {
	Listings []*Listing `json:"listings"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
	HasMore  bool       `json:"has_more"`
}

// Browse lists active listings matching the filter.
func (s *Service) Browse(ctx context.Context, f Filter) (*ListingsPage, error) {
	if f.Status == "" {
		f.Status = StatusActive
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	listings, total, err := s.store.ListListings(ctx, f)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing marketplace")
	}
	return &ListingsPage{
		Listings: listings,
		Total:    total,
		Limit:    f.Limit,
		Offset:   f.Offset,
		HasMore:  f.Offset+f.Limit < total,
	}, nil
}

// PlaceBidRequest bids on an auction listing.
type PlaceBidRequest struct {
	ListingID     string `json:"listing_id"`
	BidderAddress string `json:"bidder_address"`
	BidderName    string `json:"bidder_name,omitempty"`
	Amount        string `json:"amount"`
	Token         string `json:"token,omitempty"`
}

// BidResult reports a placed bid and what it beat.
type BidResult struct {
	Bid             *Bid   `json:"bid"`
	IsHighest       bool   `json:"is_highest"`
	PreviousHighest string `json:"previous_highest"`
}

// PlaceBid records a bid on an auction.
//
// Precondition: the listing is an auction and the amount beats the
// current highest bid.
func (s *Service) PlaceBid(ctx context.Context, req PlaceBidRequest) (*BidResult, error) {
	if req.ListingID == "" || req.BidderAddress == "" || req.Amount == "" {
		return nil, apperrors.InvalidArgument("Listing ID, bidder address, and amount required")
	}
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return nil, apperrors.InvalidArgumentf("unparseable bid amount %q", req.Amount)
	}

	l, err := s.loadListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.ListingType != ListingAuction {
		return nil, apperrors.FailedPrecondition("This is not an auction listing")
	}

	bids, err := s.store.ListBids(ctx, req.ListingID)
	if err != nil {
		return nil, apperrors.Wrap(err, "loading bids")
	}
	previousHighest := "0"
	var highest *Bid
	for _, b := range bids {
		if highest == nil || b.AmountValue() > highest.AmountValue() {
			highest = b
		}
	}
	if highest != nil {
		previousHighest = highest.Amount
		if amount <= highest.AmountValue() {
			return nil, apperrors.FailedPrecondition("Bid must be higher than current highest bid")
		}
	}

	// demote earlier bids before recording the new winner
	for _, b := range bids {
		if b.IsWinning {
			b.IsWinning = false
			if err := s.store.SaveBid(ctx, b); err != nil {
				return nil, apperrors.Wrap(err, "demoting bid")
			}
		}
	}

	now := s.clk.Now().UTC()
	bid := &Bid{
		ID:              s.bidIDs.Generate(),
		ListingID:       req.ListingID,
		BidderAddress:   req.BidderAddress,
		BidderName:      req.BidderName,
		Amount:          req.Amount,
		Token:           orDefault(req.Token, "EGLD"),
		Timestamp:       now,
		IsWinning:       true,
		TransactionHash: fmt.Sprintf("tx_%d", now.UnixMilli()),
	}
	if err := s.store.SaveBid(ctx, bid); err != nil {
		return nil, apperrors.Wrap(err, "saving bid")
	}

	s.log.Info("bid placed",
		zap.String("listing_id", req.ListingID),
		zap.String("amount", req.Amount))
	return &BidResult{Bid: bid, IsHighest: true, PreviousHighest: previousHighest}, nil
}

// PurchaseRequest buys a fixed-price listing outright.
type PurchaseRequest struct {
	ListingID    string `json:"listing_id"`
	BuyerAddress string `json:"buyer_address"`
}

// PurchaseResult reports a completed sale.
type PurchaseResult struct {
	TransactionHash string `json:"transaction_hash"`
	ListingID       string `json:"listing_id"`
	HeroName        string `json:"hero_name"`
	Price           Price  `json:"price"`
	Buyer           string `json:"buyer"`
	Seller          string `json:"seller"`
}

// Purchase completes a fixed-price sale.
//
// Precondition: the listing is active and fixed price.
func (s *Service) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.ListingID == "" || req.BuyerAddress == "" {
		return nil, apperrors.InvalidArgument("Listing ID and buyer address required")
	}
	l, err := s.loadListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != StatusActive {
		return nil, apperrors.FailedPrecondition("Listing is not active")
	}
	if l.ListingType != ListingFixedPrice {
		return nil, apperrors.FailedPrecondition("This is an auction - place a bid instead")
	}

	now := s.clk.Now().UTC()
	l.Status = StatusSold
	l.SoldAt = &now
	l.SoldTo = req.BuyerAddress
	l.FinalPrice = l.Price.Amount
	if err := s.store.SaveListing(ctx, l); err != nil {
		return nil, apperrors.Wrap(err, "saving listing")
	}

	s.log.Info("listing sold",
		zap.String("listing_id", l.ID),
		zap.String("buyer", req.BuyerAddress),
		zap.String("price", l.Price.Amount))
	return &PurchaseResult{
		TransactionHash: fmt.Sprintf("purchase_%d", now.UnixMilli()),
		ListingID:       l.ID,
		HeroName:        l.HeroName,
		Price:           l.Price,
		Buyer:           req.BuyerAddress,
		Seller:          l.SellerAddress,
	}, nil
}

// CancelRequest withdraws a listing.
type CancelRequest struct {
	ListingID     string `json:"listing_id"`
	SellerAddress string `json:"seller_address"`
}

// Cancel withdraws a listing. Only the seller may cancel.
func (s *Service) Cancel(ctx context.Context, req CancelRequest) (string, error) {
	if req.ListingID == "" || req.SellerAddress == "" {
		return "", apperrors.InvalidArgument("Listing ID and seller address required")
	}
	l, err := s.loadListing(ctx, req.ListingID)
	if err != nil {
		return "", err
	}
	if l.SellerAddress != req.SellerAddress {
		return "", apperrors.PermissionDenied("Only the seller can cancel this listing")
	}
	l.Status = StatusCancelled
	if err := s.store.SaveListing(ctx, l); err != nil {
		return "", apperrors.Wrap(err, "saving listing")
	}
	s.log.Info("listing cancelled", zap.String("listing_id", l.ID))
	return fmt.Sprintf("Listing for %s has been cancelled", l.HeroName), nil
}

// Stats summarizes marketplace activity from the stored listings.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	active, _, err := s.store.ListListings(ctx, Filter{Status: StatusActive, Limit: -1})
	if err != nil {
		return nil, apperrors.Wrap(err, "listing marketplace")
	}
	sold, _, err := s.store.ListListings(ctx, Filter{Status: StatusSold, Limit: -1})
	if err != nil {
		return nil, apperrors.Wrap(err, "listing marketplace")
	}

	volume := 0.0
	recent := make([]Sale, 0, len(sold))
	for _, l := range sold {
		if v, err := strconv.ParseFloat(l.FinalPrice, 64); err == nil {
			volume += v
		}
		sale := Sale{HeroName: l.HeroName, Price: l.FinalPrice + " " + l.Price.Token}
		if l.SoldAt != nil {
			sale.Timestamp = *l.SoldAt
		}
		recent = append(recent, sale)
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].Timestamp.After(recent[j].Timestamp) })
	if len(recent) > 5 {
		recent = recent[:5]
	}

	avg := 0.0
	if len(sold) > 0 {
		avg = volume / float64(len(sold))
	}
	floor := 0.0
	for i, l := range active {
		if v, err := strconv.ParseFloat(l.Price.Amount, 64); err == nil && (i == 0 || v < floor) {
			floor = v
		}
	}

	return &Stats{
		TotalListings: len(active),
		TotalSales:    len(sold),
		TotalVolume:   formatAmount(volume),
		AveragePrice:  formatAmount(avg),
		TopCollections: []Collection{{
			Name:       "Cosmic Heroes",
			Volume:     formatAmount(volume) + " EGLD",
			FloorPrice: formatAmount(floor) + " EGLD",
			Items:      len(active) + len(sold),
		}},
		RecentSales: recent,
	}, nil
}

func (s *Service) loadListing(ctx context.Context, id string) (*Listing, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("Listing not found")
		}
		return nil, apperrors.Wrap(err, "loading listing")
	}
	return l, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultAttrs(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
