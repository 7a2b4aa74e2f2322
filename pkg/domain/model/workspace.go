package model

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// Workspace represents a workspace's identity
type Workspace struct {
	ID   types.WorkspaceID
	Name string
}

// ErrWorkspaceNotFound is returned when a workspace is not found in the registry
var ErrWorkspaceNotFound = goerr.New("workspace not found")

// WorkspaceEntry holds workspace identity and where its records were loaded from
type WorkspaceEntry struct {
	Workspace Workspace
	Source    string // file path, empty for programmatic registration
}

// WorkspaceRegistry holds workspace identities. Records themselves live in the
// repository. The registry is safe for concurrent use because workspace files
// can be reloaded while the server is running.
type WorkspaceRegistry struct {
	mu      sync.RWMutex
	entries map[types.WorkspaceID]*WorkspaceEntry
	order   []types.WorkspaceID // preserves registration order
}

// NewWorkspaceRegistry creates a new empty WorkspaceRegistry
func NewWorkspaceRegistry() *WorkspaceRegistry {
	return &WorkspaceRegistry{
		entries: make(map[types.WorkspaceID]*WorkspaceEntry),
	}
}

// Register adds a workspace entry to the registry, replacing an existing one
// with the same ID while keeping its original position.
func (r *WorkspaceRegistry) Register(entry *WorkspaceEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Workspace.ID]; !exists {
		r.order = append(r.order, entry.Workspace.ID)
	}
	r.entries[entry.Workspace.ID] = entry
}

// Get retrieves a workspace entry by ID
func (r *WorkspaceRegistry) Get(workspaceID types.WorkspaceID) (*WorkspaceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[workspaceID]
	if !ok {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found",
			goerr.V("workspace_id", workspaceID))
	}
	return entry, nil
}

// List returns all registered workspace entries in registration order
func (r *WorkspaceRegistry) List() []*WorkspaceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*WorkspaceEntry, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}

// Workspaces returns all registered workspaces in registration order
func (r *WorkspaceRegistry) Workspaces() []Workspace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Workspace, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id].Workspace)
	}
	return result
}

// WorkspaceSnapshot is a complete set of records for one workspace, as read
// from a workspace file
type WorkspaceSnapshot struct {
	Workspace Workspace
	Source    string
	Risks     []*Risk
	Controls  []*Control
}
