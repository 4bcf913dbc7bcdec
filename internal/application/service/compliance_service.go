package service

import (
	"context"
	"strings"
	"sync"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/domain/repository"
	domain_service "nft-market-gateway/internal/domain/service"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ComplianceApplicationService implements ComplianceService: it validates
// the address shape, delegates to the screening vendor and publishes an
// audit event for completed screenings.
type ComplianceApplicationService struct {
	screener repository.AddressScreener
	audit    repository.ScreeningAuditPublisher
	logger   *logger.Logger
}

// NewComplianceApplicationService creates a new compliance application service
func NewComplianceApplicationService(
	screener repository.AddressScreener,
	audit repository.ScreeningAuditPublisher,
	logger *logger.Logger,
) domain_service.ComplianceService {
	return &ComplianceApplicationService{
		screener: screener,
		audit:    audit,
		logger:   logger.WithComponent("compliance-service"),
	}
}

// ScreenAddress validates the address shape and forwards it to the vendor
func (s *ComplianceApplicationService) ScreenAddress(ctx context.Context, address string) (*entity.ComplianceResult, error) {
	if address == "" {
		return nil, &entity.ValidationError{Message: "Address is required"}
	}
	if !isEthereumAddress(address) {
		return nil, &entity.ValidationError{Message: "Invalid Ethereum address format"}
	}

	result, err := s.screener.ScreenAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	s.publishAudit(ctx, result)
	return result, nil
}

// ScreenPair screens the seller and the buyer concurrently. Each side
// collects its own result or error; completion order is unspecified and a
// failure on one side is a normal outcome for the pair, not an error.
func (s *ComplianceApplicationService) ScreenPair(ctx context.Context, sellerAddress, buyerAddress string) *entity.ScreeningReport {
	report := &entity.ScreeningReport{
		Seller: entity.ScreeningOutcome{Address: sellerAddress},
		Buyer:  entity.ScreeningOutcome{Address: buyerAddress},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Seller.Result, report.Seller.Err = s.ScreenAddress(ctx, sellerAddress)
	}()
	go func() {
		defer wg.Done()
		report.Buyer.Result, report.Buyer.Err = s.ScreenAddress(ctx, buyerAddress)
	}()
	wg.Wait()

	return report
}

// publishAudit emits a screening-audit event. Audit delivery is best-effort
// and never affects the screening outcome.
func (s *ComplianceApplicationService) publishAudit(ctx context.Context, result *entity.ComplianceResult) {
	if s.audit == nil {
		return
	}
	event := &entity.ScreeningAuditEvent{
		Address:    result.Address,
		Chain:      result.Chain,
		RiskLevel:  result.Risk.Level.String(),
		RiskScore:  result.Risk.Score,
		ScreenedAt: result.ScreenedAt,
	}
	if err := s.audit.PublishScreening(ctx, event); err != nil {
		s.logger.Warn("Failed to publish screening audit event",
			zap.String("address", result.Address),
			zap.Error(err))
	}
}

// isEthereumAddress reports whether address is a 0x-prefixed 20-byte hex
// account identifier. go-ethereum accepts unprefixed addresses, so the
// prefix is checked separately.
func isEthereumAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}
