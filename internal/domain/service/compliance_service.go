package service

import (
	"context"
	"nft-market-gateway/internal/domain/entity"
)

// ComplianceService defines the interface for compliance screening operations
type ComplianceService interface {
	// ScreenAddress validates the address shape and forwards it to the
	// screening vendor
	ScreenAddress(ctx context.Context, address string) (*entity.ComplianceResult, error)

	// ScreenPair screens a seller and a buyer concurrently and collects both
	// outcomes; a failure on one side does not cancel or mask the other
	ScreenPair(ctx context.Context, sellerAddress, buyerAddress string) *entity.ScreeningReport
}
