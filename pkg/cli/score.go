package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/urfave/cli/v3"
)

func cmdScore() *cli.Command {
	var wsCfg config.Workspace
	var workspaceID string
	var riskID string
	var controlID string
	var jsonOutput bool

	var flags []cli.Flag
	flags = append(flags,
		&cli.StringFlag{
			Name:        "risk",
			Usage:       "Risk ID",
			Required:    true,
			Destination: &riskID,
		},
		&cli.StringFlag{
			Name:        "control",
			Usage:       "Control ID",
			Required:    true,
			Destination: &controlID,
		},
		workspaceIDFlag(&workspaceID),
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print results as JSON",
			Destination: &jsonOutput,
		},
	)
	flags = append(flags, wsCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Score one risk/control pair in both directions",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := loadUseCases(ctx, &wsCfg)
			if err != nil {
				return err
			}
			wsID, err := resolveWorkspaceID(uc, workspaceID)
			if err != nil {
				return err
			}

			pair, err := uc.Recommend.ScorePair(ctx, wsID, model.RiskID(riskID), model.ControlID(controlID))
			if err != nil {
				return goerr.Wrap(err, "failed to score pair")
			}

			w := c.Root().Writer
			if jsonOutput {
				return printJSON(w, map[string]matchView{
					"control_for_risk": toMatchView(pair.ControlForRisk),
					"risk_for_control": toMatchView(pair.RiskForControl),
				})
			}
			printMatch(w, "Control for risk", pair.ControlForRisk, relevance.ControlRecommendationThreshold)
			printMatch(w, "Risk for control", pair.RiskForControl, relevance.RiskRecommendationThreshold)
			return nil
		},
	}
}
