package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var wsCfg config.Workspace
	var strict bool

	var flags []cli.Flag
	flags = append(flags, wsCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "strict",
		Usage:       "Treat lint issues (values that never match) as errors",
		Sources:     cli.EnvVars("RISKMATCH_VALIDATE_STRICT"),
		Destination: &strict,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate workspace files and report values the scorer ignores",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate workspace files
			uc, err := loadUseCases(ctx, &wsCfg)
			if err != nil {
				return goerr.Wrap(err, "workspace validation failed")
			}

			workspaces := uc.Workspace.List()
			logger.Info("Workspace validation passed", "workspace_count", len(workspaces))

			// Step 2: Lint records for tags and phrases that can never contribute to a score
			result, err := uc.Lint(ctx)
			if err != nil {
				return goerr.Wrap(err, "lint failed")
			}

			w := c.Root().Writer
			for _, issue := range result.Issues {
				logger.Warn("Lint issue found",
					"workspace_id", issue.WorkspaceID,
					"kind", issue.Kind,
					"record_id", issue.RecordID,
					"field", issue.Field,
					"message", issue.Message,
					"actual", issue.Actual,
				)
				_, _ = fmt.Fprintln(w, issue.String())
			}
			_, _ = fmt.Fprintf(w, "%d workspace(s) valid, %d lint issue(s)\n", len(workspaces), len(result.Issues))

			if strict && result.HasIssues() {
				return fmt.Errorf("lint found %d issue(s)", len(result.Issues))
			}
			return nil
		},
	}
}
