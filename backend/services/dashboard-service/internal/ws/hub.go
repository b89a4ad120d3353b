package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
)

// Options tunes viewer connections.
type Options struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
	SendBuffer   int
}

func (o Options) withDefaults() Options {
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 16
	}
	return o
}

// SnapshotSource provides the snapshot a new viewer starts from.
type SnapshotSource interface {
	Snapshot() dashboard.Snapshot
}

// Hub tracks live viewers and broadcasts every rendered snapshot to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection

	source    SnapshotSource
	opts      Options
	logger    *zap.Logger
	onViewers func(n int)
	ping      func(*Connection) error
}

// NewHub builds a hub. onViewers, when set, is called with the viewer count
// after every connect and disconnect.
func NewHub(source SnapshotSource, opts Options, logger *zap.Logger, onViewers func(int)) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		connections: make(map[string]*Connection),
		source:      source,
		opts:        opts.withDefaults(),
		logger:      logger,
		onViewers:   onViewers,
		ping:        (*Connection).Ping,
	}
}

// Register adds conn and queues the current snapshot for it. The snapshot is
// read under the write lock, so any tick rendered after that read is
// broadcast to conn as well.
func (h *Hub) Register(conn *Connection) error {
	h.mu.Lock()
	data, err := json.Marshal(h.source.Snapshot())
	if err != nil {
		h.mu.Unlock()
		return fmt.Errorf("ws: encode snapshot: %w", err)
	}
	conn.Send(data)
	h.connections[conn.ID()] = conn
	n := len(h.connections)
	h.mu.Unlock()

	h.reportViewers(n)
	return nil
}

// Remove unregisters a viewer.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	delete(h.connections, id)
	n := len(h.connections)
	h.mu.Unlock()

	h.reportViewers(n)
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Apply broadcasts snap to every viewer. A slow viewer loses this snapshot
// instead of delaying the tick.
func (h *Hub) Apply(_ context.Context, snap dashboard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ws: encode snapshot: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		conn.Send(data)
	}
	return nil
}

// Start begins ping loop to keep idle viewers connected.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A ping can block for the write timeout; never hold the lock across it.
			for _, conn := range h.viewers() {
				if err := h.ping(conn); err != nil {
					h.logger.Debug("viewer ping failed", zap.String("viewer_id", conn.ID()), zap.Error(err))
				}
			}
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	for _, conn := range h.viewers() {
		_ = conn.Close()
	}
}

func (h *Hub) viewers() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, conn := range h.connections {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) reportViewers(n int) {
	if h.onViewers != nil {
		h.onViewers(n)
	}
}
