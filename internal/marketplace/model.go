// Package marketplace implements NFT hero listings, auctions, and
// sales.
package marketplace

import (
	"strconv"
	"time"
)

// ListingType separates buy-now listings from auctions.
type ListingType string

const (
	ListingFixedPrice ListingType = "fixed_price"
	ListingAuction    ListingType = "auction"
)

// ListingStatus tracks a listing through its lifecycle.
type ListingStatus string

const (
	StatusActive    ListingStatus = "active"
	StatusSold      ListingStatus = "sold"
	StatusCancelled ListingStatus = "cancelled"
	StatusExpired   ListingStatus = "expired"
)

// Price is an amount in a payment token. Amounts stay strings on the
// wire; token amounts never go through floats in storage.
type Price struct {
	Amount string `json:"amount"`
	Token  string `json:"token"`
}

// Metadata is the display block attached to a listing.
type Metadata struct {
	Image       string         `json:"image"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes"`
}

// Listing is one hero offered for sale.
type Listing struct {
	ID            string        `json:"id"`
	NFTID         string        `json:"nft_id"`
	HeroID        string        `json:"hero_id"`
	SellerAddress string        `json:"seller_address"`
	SellerName    string        `json:"seller_name,omitempty"`
	HeroName      string        `json:"hero_name"`
	HeroClass     string        `json:"hero_class"`
	HeroRarity    string        `json:"hero_rarity"`
	HeroLevel     int           `json:"hero_level"`
	HeroPower     int           `json:"hero_power"`
	Price         Price         `json:"price"`
	ListingType   ListingType   `json:"listing_type"`
	Status        ListingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	SoldAt        *time.Time    `json:"sold_at,omitempty"`
	SoldTo        string        `json:"sold_to,omitempty"`
	FinalPrice    string        `json:"final_price,omitempty"`
	Views         int           `json:"views"`
	Favorites     int           `json:"favorites"`
	Metadata      Metadata      `json:"metadata"`
}

// Bid is one auction bid.
type Bid struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listing_id"`
	BidderAddress   string    `json:"bidder_address"`
	BidderName      string    `json:"bidder_name,omitempty"`
	Amount          string    `json:"amount"`
	Token           string    `json:"token"`
	Timestamp       time.Time `json:"timestamp"`
	IsWinning       bool      `json:"is_winning"`
	TransactionHash string    `json:"transaction_hash,omitempty"`
}

// AmountValue parses the bid amount for comparisons. Unparseable
// amounts compare as zero.
func (b *Bid) AmountValue() float64 {
	v, err := strconv.ParseFloat(b.Amount, 64)
	if err != nil {
		return 0
	}
	return v
}

// Filter narrows listing queries. Zero fields match everything.
type Filter struct {
	Status    ListingStatus
	HeroClass string
	Rarity    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// Stats is the marketplace summary payload.
type Stats struct {
	TotalListings  int          `json:"total_listings"`
	TotalSales     int          `json:"total_sales"`
	TotalVolume    string       `json:"total_volume"`
	AveragePrice   string       `json:"average_price"`
	TopCollections []Collection `json:"top_collections"`
	RecentSales    []Sale       `json:"recent_sales"`
}

// Collection is one aggregated collection row in the stats payload.
type Collection struct {
	Name       string `json:"name"`
	Volume     string `json:"volume"`
	FloorPrice string `json:"floor_price"`
	Items      int    `json:"items"`
}

// Sale is one recent sale row in the stats payload.
type Sale struct {
	HeroName  string    `json:"hero_name"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
