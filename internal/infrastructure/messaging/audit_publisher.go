package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ScreeningPublisher publishes completed screening outcomes to NATS.
// Publishing is best-effort and sits off the request critical path; when
// disabled, every operation is a no-op.
type ScreeningPublisher struct {
	conn   *nats.Conn
	config *config.NATSConfig
	logger *logger.Logger
}

// NewScreeningPublisher creates a new screening-audit publisher
func NewScreeningPublisher(cfg *config.NATSConfig, logger *logger.Logger) *ScreeningPublisher {
	return &ScreeningPublisher{
		config: cfg,
		logger: logger.WithComponent("screening-publisher"),
	}
}

// Connect connects to the NATS server
func (p *ScreeningPublisher) Connect(ctx context.Context) error {
	if !p.config.Enabled {
		p.logger.Info("NATS is disabled, skipping connection")
		return nil
	}

	p.logger.Info("Connecting to NATS server", zap.String("url", p.config.URL))

	opts := []nats.Option{
		nats.Name("nft-market-gateway"),
		nats.Timeout(p.config.ConnectTimeout),
		nats.ReconnectWait(p.config.ReconnectDelay),
		nats.MaxReconnects(p.config.ReconnectAttempts),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			p.logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(p.config.URL, opts...)
	if err != nil {
		p.logger.Error("Failed to connect to NATS", zap.Error(err))
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	p.conn = conn
	p.logger.Info("Successfully connected to NATS")
	return nil
}

// Disconnect closes the NATS connection
func (p *ScreeningPublisher) Disconnect() error {
	if p.conn == nil {
		return nil
	}
	p.logger.Info("Closing NATS connection")
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

// PublishScreening publishes one screening outcome to
// <subject_prefix>.screenings
func (p *ScreeningPublisher) PublishScreening(ctx context.Context, event *entity.ScreeningAuditEvent) error {
	if p.conn == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode screening audit event: %w", err)
	}

	subject := fmt.Sprintf("%s.screenings", p.config.SubjectPrefix)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish screening audit event: %w", err)
	}

	p.logger.Debug("Published screening audit event",
		zap.String("subject", subject),
		zap.String("address", event.Address))
	return nil
}
