package interfaces

import (
	"context"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

type RiskRepository interface {
	// Put stores risks in the workspace, replacing any with the same ID.
	// Risks without an ID get a generated one.
	Put(ctx context.Context, workspaceID types.WorkspaceID, risks ...*model.Risk) ([]*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, workspaceID types.WorkspaceID, id model.RiskID) (*model.Risk, error)

	// List retrieves all risks of the workspace in insertion order
	List(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Risk, error)

	// Delete deletes a risk by ID
	Delete(ctx context.Context, workspaceID types.WorkspaceID, id model.RiskID) error

	// Replace swaps the whole risk set of the workspace
	Replace(ctx context.Context, workspaceID types.WorkspaceID, risks []*model.Risk) error
}
