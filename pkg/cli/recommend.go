package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/urfave/cli/v3"
)

func cmdRecommend() *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"r"},
		Usage:   "Rank controls for a risk, or risks for a control",
		Commands: []*cli.Command{
			cmdRecommendControls(),
			cmdRecommendRisks(),
		},
	}
}

// rankFlags holds the flags shared by ranking commands
type rankFlags struct {
	workspaceID string
	minScore    int
	jsonOutput  bool
}

func (x *rankFlags) Flags() []cli.Flag {
	return []cli.Flag{
		workspaceIDFlag(&x.workspaceID),
		&cli.IntFlag{
			Name:        "min-score",
			Usage:       "Minimum score to include (default: recommendation threshold)",
			Sources:     cli.EnvVars("RISKMATCH_MIN_SCORE"),
			Destination: &x.minScore,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print results as JSON",
			Destination: &x.jsonOutput,
		},
	}
}

// options returns the rank options and the effective threshold
func (x *rankFlags) options(c *cli.Command, defaultThreshold int) ([]relevance.RankOption, int) {
	if !c.IsSet("min-score") {
		return nil, defaultThreshold
	}
	return []relevance.RankOption{relevance.WithMinScore(x.minScore)}, x.minScore
}

func cmdRecommendControls() *cli.Command {
	var wsCfg config.Workspace
	var rank rankFlags
	var riskID string

	var flags []cli.Flag
	flags = append(flags, &cli.StringFlag{
		Name:        "risk",
		Usage:       "Risk ID to find controls for",
		Required:    true,
		Destination: &riskID,
	})
	flags = append(flags, rank.Flags()...)
	flags = append(flags, wsCfg.Flags()...)

	return &cli.Command{
		Name:  "controls",
		Usage: "Rank the controls of a workspace for a risk",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := loadUseCases(ctx, &wsCfg)
			if err != nil {
				return err
			}
			wsID, err := resolveWorkspaceID(uc, rank.workspaceID)
			if err != nil {
				return err
			}

			opts, threshold := rank.options(c, relevance.ControlRecommendationThreshold)
			ranked, err := uc.Recommend.RecommendControls(ctx, wsID, model.RiskID(riskID), opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to recommend controls")
			}

			w := c.Root().Writer
			if rank.jsonOutput {
				return printJSON(w, controlViews(ranked))
			}
			printRanked(w, fmt.Sprintf("Controls for risk %s", riskID), controlViews(ranked), threshold)
			return nil
		},
	}
}

func cmdRecommendRisks() *cli.Command {
	var wsCfg config.Workspace
	var rank rankFlags
	var controlID string

	var flags []cli.Flag
	flags = append(flags, &cli.StringFlag{
		Name:        "control",
		Usage:       "Control ID to find risks for",
		Required:    true,
		Destination: &controlID,
	})
	flags = append(flags, rank.Flags()...)
	flags = append(flags, wsCfg.Flags()...)

	return &cli.Command{
		Name:  "risks",
		Usage: "Rank the risks of a workspace for a control",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := loadUseCases(ctx, &wsCfg)
			if err != nil {
				return err
			}
			wsID, err := resolveWorkspaceID(uc, rank.workspaceID)
			if err != nil {
				return err
			}

			opts, threshold := rank.options(c, relevance.RiskRecommendationThreshold)
			ranked, err := uc.Recommend.RecommendRisks(ctx, wsID, model.ControlID(controlID), opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to recommend risks")
			}

			w := c.Root().Writer
			if rank.jsonOutput {
				return printJSON(w, riskViews(ranked))
			}
			printRanked(w, fmt.Sprintf("Risks for control %s", controlID), riskViews(ranked), threshold)
			return nil
		},
	}
}
