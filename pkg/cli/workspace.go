package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/repository/memory"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrWorkspaceRequired is returned when several workspaces are loaded and
// none was selected
var ErrWorkspaceRequired = goerr.New("--workspace-id is required when more than one workspace is loaded")

// loadUseCases imports the workspace files into a fresh in-memory repository
func loadUseCases(ctx context.Context, wsCfg *config.Workspace, opts ...usecase.Option) (*usecase.UseCases, error) {
	uc := usecase.New(memory.New(), nil, opts...)
	if _, err := wsCfg.Configure(ctx, uc); err != nil {
		return nil, goerr.Wrap(err, "failed to load workspace files")
	}
	return uc, nil
}

func workspaceIDFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "workspace-id",
		Usage:       "Target workspace ID (optional when only one workspace is loaded)",
		Sources:     cli.EnvVars("RISKMATCH_WORKSPACE_ID"),
		Destination: dst,
	}
}

// resolveWorkspaceID returns the requested workspace, or the only loaded one
func resolveWorkspaceID(uc *usecase.UseCases, requested string) (types.WorkspaceID, error) {
	if requested != "" {
		return types.WorkspaceID(requested), nil
	}

	workspaces := uc.Workspace.List()
	if len(workspaces) != 1 {
		return "", goerr.Wrap(ErrWorkspaceRequired, "cannot pick a workspace",
			goerr.V("loaded", len(workspaces)))
	}
	return workspaces[0].ID, nil
}
