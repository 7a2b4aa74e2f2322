package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrUncoveredRisks is returned by coverage --fail-uncovered
var ErrUncoveredRisks = goerr.New("workspace has uncovered risks")

func cmdCoverage() *cli.Command {
	var wsCfg config.Workspace
	var rank rankFlags
	var concurrency int
	var failUncovered bool

	var flags []cli.Flag
	flags = append(flags, rank.Flags()...)
	flags = append(flags,
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of risks ranked in parallel",
			Value:       8,
			Sources:     cli.EnvVars("RISKMATCH_COVERAGE_CONCURRENCY"),
			Destination: &concurrency,
		},
		&cli.BoolFlag{
			Name:        "fail-uncovered",
			Usage:       "Exit with an error when any risk has no recommended control",
			Destination: &failUncovered,
		},
	)
	flags = append(flags, wsCfg.Flags()...)

	return &cli.Command{
		Name:    "coverage",
		Aliases: []string{"c"},
		Usage:   "Report which risks have no recommended control",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := loadUseCases(ctx, &wsCfg, usecase.WithCoverageConcurrency(concurrency))
			if err != nil {
				return err
			}
			wsID, err := resolveWorkspaceID(uc, rank.workspaceID)
			if err != nil {
				return err
			}

			opts, threshold := rank.options(c, relevance.ControlRecommendationThreshold)
			report, err := uc.Recommend.Coverage(ctx, wsID, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to compute coverage")
			}

			view := toCoverageView(report)
			w := c.Root().Writer
			if rank.jsonOutput {
				if err := printJSON(w, view); err != nil {
					return err
				}
			} else {
				printCoverage(w, view, threshold)
			}

			if failUncovered && len(view.Uncovered) > 0 {
				return goerr.Wrap(ErrUncoveredRisks, "coverage check failed",
					goerr.V("workspace_id", wsID), goerr.V("uncovered", view.Uncovered))
			}
			return nil
		},
	}
}
