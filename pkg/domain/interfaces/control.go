package interfaces

import (
	"context"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

type ControlRepository interface {
	// Put stores controls in the workspace, replacing any with the same ID.
	// Controls without an ID get a generated one.
	Put(ctx context.Context, workspaceID types.WorkspaceID, controls ...*model.Control) ([]*model.Control, error)

	// Get retrieves a control by ID
	Get(ctx context.Context, workspaceID types.WorkspaceID, id model.ControlID) (*model.Control, error)

	// List retrieves all controls of the workspace in insertion order
	List(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Control, error)

	// Delete deletes a control by ID
	Delete(ctx context.Context, workspaceID types.WorkspaceID, id model.ControlID) error

	// Replace swaps the whole control set of the workspace
	Replace(ctx context.Context, workspaceID types.WorkspaceID, controls []*model.Control) error
}
