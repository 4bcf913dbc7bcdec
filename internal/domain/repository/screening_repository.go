package repository

import (
	"context"
	"nft-market-gateway/internal/domain/entity"
)

// AddressScreener defines the interface for vendor address screening
type AddressScreener interface {
	// ScreenAddress submits one address for risk screening and returns the
	// vendor's verdict; exactly one outbound call per invocation, no retries
	ScreenAddress(ctx context.Context, address string) (*entity.ComplianceResult, error)
}

// ScreeningAuditPublisher defines the interface for publishing completed
// screening outcomes to the audit stream
type ScreeningAuditPublisher interface {
	// PublishScreening publishes one screening outcome; failures must not
	// affect the screening flow itself
	PublishScreening(ctx context.Context, event *entity.ScreeningAuditEvent) error
}
