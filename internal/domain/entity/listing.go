package entity

import (
	"fmt"
	"strings"
)

// ItemListed represents an ItemListed event node returned by the marketplace
// indexer. Fields the indexer may omit are pointers so that a value of "0"
// stays distinguishable from an absent value.
type ItemListed struct {
	RindexerID      int64   `json:"rindexerId"`
	ContractAddress string  `json:"contractAddress"`
	Seller          *string `json:"seller"`
	NFTAddress      *string `json:"nftAddress"`
	TokenID         *string `json:"tokenId"`
	Price           *string `json:"price"`
	TxHash          string  `json:"txHash"`
	BlockNumber     int64   `json:"blockNumber"`
	BlockTimestamp  *string `json:"blockTimestamp"`
	BlockHash       string  `json:"blockHash"`
	Network         string  `json:"network"`
	TxIndex         int64   `json:"txIndex"`
	LogIndex        string  `json:"logIndex"`
}

// ItemBought represents an ItemBought event node.
type ItemBought struct {
	RindexerID      int64   `json:"rindexerId"`
	ContractAddress string  `json:"contractAddress"`
	Buyer           *string `json:"buyer"`
	NFTAddress      *string `json:"nftAddress"`
	TokenID         *string `json:"tokenId"`
	Price           *string `json:"price"`
	TxHash          string  `json:"txHash"`
	BlockNumber     int64   `json:"blockNumber"`
	BlockTimestamp  *string `json:"blockTimestamp"`
	BlockHash       string  `json:"blockHash"`
	Network         string  `json:"network"`
	TxIndex         int64   `json:"txIndex"`
	LogIndex        string  `json:"logIndex"`
}

// ItemCanceled represents an ItemCanceled event node.
type ItemCanceled struct {
	RindexerID      int64   `json:"rindexerId"`
	ContractAddress string  `json:"contractAddress"`
	Seller          *string `json:"seller"`
	NFTAddress      *string `json:"nftAddress"`
	TokenID         *string `json:"tokenId"`
	TxHash          string  `json:"txHash"`
	BlockNumber     int64   `json:"blockNumber"`
	BlockTimestamp  *string `json:"blockTimestamp"`
	BlockHash       string  `json:"blockHash"`
	Network         string  `json:"network"`
	TxIndex         int64   `json:"txIndex"`
	LogIndex        string  `json:"logIndex"`
}

// PageInfo carries the indexer's connection pagination cursors.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// ItemListedsConnection is the allItemListeds connection.
type ItemListedsConnection struct {
	Nodes      []ItemListed `json:"nodes"`
	PageInfo   PageInfo     `json:"pageInfo"`
	TotalCount int          `json:"totalCount"`
}

// ItemBoughtsConnection is the allItemBoughts connection.
type ItemBoughtsConnection struct {
	Nodes []ItemBought `json:"nodes"`
}

// ItemCanceledsConnection is the allItemCanceleds connection.
type ItemCanceledsConnection struct {
	Nodes []ItemCanceled `json:"nodes"`
}

// MarketplaceEvents aggregates the three event streams returned by one
// indexer round trip.
type MarketplaceEvents struct {
	AllItemListeds   ItemListedsConnection   `json:"allItemListeds"`
	AllItemBoughts   ItemBoughtsConnection   `json:"allItemBoughts"`
	AllItemCanceleds ItemCanceledsConnection `json:"allItemCanceleds"`
}

// ActiveListing is the derived projection of a listing with no matching
// bought or canceled counterpart. It has no storage and is recomputed
// wholesale from the event streams on every fetch.
type ActiveListing struct {
	TokenID         string  `json:"tokenId"`
	ContractAddress string  `json:"contractAddress"`
	NFTAddress      string  `json:"nftAddress"`
	Price           string  `json:"price"`
	Seller          string  `json:"seller"`
	BlockTimestamp  *string `json:"blockTimestamp"`
	Network         string  `json:"network"`
}

// ListingQuery holds the pagination, ordering and network-filter parameters
// of one marketplace events fetch.
type ListingQuery struct {
	First   int
	OrderBy []string
	Network string
}

// CacheKey returns a stable key identifying this parameter tuple.
func (q ListingQuery) CacheKey() string {
	return fmt.Sprintf("listings|%d|%s|%s", q.First, strings.Join(q.OrderBy, ","), q.Network)
}
