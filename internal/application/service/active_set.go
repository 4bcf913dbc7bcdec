package service

import (
	"strings"

	"nft-market-gateway/internal/domain/entity"
)

// ReduceActiveListings derives the set of currently-active listings from the
// three raw event streams. A listing is active iff no bought or canceled
// event shares its identifier tuple (contract, nft, tokenId, network) and
// all projection fields are present. Input order is preserved; the function
// performs no I/O and cannot fail.
func ReduceActiveListings(listed []entity.ItemListed, bought []entity.ItemBought, canceled []entity.ItemCanceled) []entity.ActiveListing {
	inactive := make(map[string]struct{}, len(bought)+len(canceled))
	for _, item := range bought {
		inactive[listingKey(item.ContractAddress, item.NFTAddress, item.TokenID, item.Network)] = struct{}{}
	}
	for _, item := range canceled {
		inactive[listingKey(item.ContractAddress, item.NFTAddress, item.TokenID, item.Network)] = struct{}{}
	}

	active := make([]entity.ActiveListing, 0, len(listed))
	for _, item := range listed {
		// Presence means "not absent and not empty". "0" is a valid token id
		// and a valid price; truthiness-style checks would drop both.
		if !present(item.TokenID) || !present(item.Price) || !present(item.NFTAddress) || !present(item.Seller) {
			continue
		}
		key := listingKey(item.ContractAddress, item.NFTAddress, item.TokenID, item.Network)
		if _, gone := inactive[key]; gone {
			continue
		}
		active = append(active, entity.ActiveListing{
			TokenID:         *item.TokenID,
			ContractAddress: item.ContractAddress,
			NFTAddress:      *item.NFTAddress,
			Price:           *item.Price,
			Seller:          *item.Seller,
			BlockTimestamp:  item.BlockTimestamp,
			Network:         item.Network,
		})
	}
	return active
}

// listingKey builds the case-insensitive identifier tuple key shared by all
// three event streams.
func listingKey(contract string, nft, tokenID *string, network string) string {
	return strings.ToLower(contract + "-" + deref(nft) + "-" + deref(tokenID) + "-" + network)
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
