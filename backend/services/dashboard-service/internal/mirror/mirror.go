// Package mirror republishes every rendered snapshot on a redis channel so
// other processes can follow the dashboard. Nothing is stored.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
)

const publishTimeout = 2 * time.Second

// Publisher is the subset of the redis client the mirror needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Mirror publishes snapshots as JSON.
type Mirror struct {
	client  Publisher
	channel string
	logger  *zap.Logger
	onError func(error)
}

// New builds a mirror publishing on channel. onError may be nil.
func New(client Publisher, channel string, logger *zap.Logger, onError func(error)) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{client: client, channel: channel, logger: logger, onError: onError}
}

// Channel returns the redis channel snapshots are published on.
func (m *Mirror) Channel() string {
	return m.channel
}

// Apply publishes snap. Failures are reported and returned but never retried;
// the next tick carries a fresh snapshot anyway.
func (m *Mirror) Apply(ctx context.Context, snap dashboard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return m.fail(fmt.Errorf("mirror: encode snapshot: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	receivers, err := m.client.Publish(ctx, m.channel, data).Result()
	if err != nil {
		return m.fail(fmt.Errorf("mirror: publish to %s: %w", m.channel, err))
	}

	m.logger.Debug("snapshot mirrored", zap.Uint64("tick", snap.Tick), zap.Int64("receivers", receivers))
	return nil
}

func (m *Mirror) fail(err error) error {
	m.logger.Warn("mirror publish failed", zap.Error(err))
	if m.onError != nil {
		m.onError(err)
	}
	return err
}
