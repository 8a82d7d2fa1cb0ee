package hub

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"varotra-backend-go/internal/store"
)

// Options tunes workspace construction.
type Options struct {
	// TopN bounds the analytics rankings. Zero means the default of 5.
	TopN int
	// LocalOnly starts every workspace in degraded-local mode without
	// ever contacting the remote store.
	LocalOnly bool
}

// Manager hands out one workspace per authenticated owner, creating and
// initializing it lazily on first access.
type Manager struct {
	src  Sources
	log  *zap.Logger
	opts Options

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewManager(src Sources, log *zap.Logger, opts Options) *Manager {
	return &Manager{
		src:        src,
		log:        log.Named("hub"),
		opts:       opts,
		workspaces: make(map[string]*Workspace),
	}
}

// Workspace returns the owner's workspace, creating it on first call. A
// failed initialization does not fail this call: the error is kept in the
// workspace state for the caller to inspect, retry, or resolve with
// UseLocalMode.
func (m *Manager) Workspace(ctx context.Context, ownerID string) (*Workspace, error) {
	if ownerID == "" {
		return nil, store.ErrNotAuthenticated
	}

	m.mu.Lock()
	ws, ok := m.workspaces[ownerID]
	if !ok {
		ws = NewWorkspace(ownerID, m.src, m.log, m.opts.TopN)
		m.workspaces[ownerID] = ws
	}
	m.mu.Unlock()

	if !ok {
		if m.opts.LocalOnly {
			ws.UseLocalMode()
		} else if err := ws.Initialize(ctx); err != nil {
			m.log.Warn("workspace initialization failed, error kept in state",
				zap.String("owner", ownerID), zap.Error(err))
		}
	}
	return ws, nil
}

// Close tears down every workspace's live feeds.
func (m *Manager) Close() {
	m.mu.Lock()
	workspaces := make([]*Workspace, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		workspaces = append(workspaces, ws)
	}
	m.mu.Unlock()

	for _, ws := range workspaces {
		ws.Close()
	}
}
