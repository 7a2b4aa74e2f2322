package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/interfaces"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
)

// WorkspaceUseCase loads workspace snapshots into the repository
type WorkspaceUseCase struct {
	repo     interfaces.Repository
	registry *model.WorkspaceRegistry
}

func NewWorkspaceUseCase(repo interfaces.Repository, registry *model.WorkspaceRegistry) *WorkspaceUseCase {
	return &WorkspaceUseCase{
		repo:     repo,
		registry: registry,
	}
}

// Import replaces the records of the snapshot's workspace and registers it.
// Importing the same workspace again swaps its record set.
func (uc *WorkspaceUseCase) Import(ctx context.Context, snapshot *model.WorkspaceSnapshot) error {
	if snapshot == nil {
		return goerr.New("workspace snapshot is nil")
	}

	wsID := snapshot.Workspace.ID
	if err := wsID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid workspace", goerr.V("source", snapshot.Source))
	}

	if err := uc.repo.Risk().Replace(ctx, wsID, snapshot.Risks); err != nil {
		return goerr.Wrap(err, "failed to store risks", goerr.V(WorkspaceIDKey, wsID))
	}
	if err := uc.repo.Control().Replace(ctx, wsID, snapshot.Controls); err != nil {
		return goerr.Wrap(err, "failed to store controls", goerr.V(WorkspaceIDKey, wsID))
	}

	uc.registry.Register(&model.WorkspaceEntry{
		Workspace: snapshot.Workspace,
		Source:    snapshot.Source,
	})

	logging.From(ctx).Info("Workspace imported",
		"workspace_id", wsID,
		"name", snapshot.Workspace.Name,
		"risks", len(snapshot.Risks),
		"controls", len(snapshot.Controls),
	)
	return nil
}

// List returns the registered workspaces in registration order
func (uc *WorkspaceUseCase) List() []model.Workspace {
	return uc.registry.Workspaces()
}
