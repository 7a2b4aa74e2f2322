package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/riskmatch/pkg/domain/interfaces"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
)

// RecommendUseCase reads workspace records from the repository and runs them
// through the relevance engine
type RecommendUseCase struct {
	repo        interfaces.Repository
	registry    *model.WorkspaceRegistry
	concurrency int
}

func NewRecommendUseCase(repo interfaces.Repository, registry *model.WorkspaceRegistry, concurrency int) *RecommendUseCase {
	if concurrency <= 0 {
		concurrency = defaultCoverageConcurrency
	}
	return &RecommendUseCase{
		repo:        repo,
		registry:    registry,
		concurrency: concurrency,
	}
}

// RecommendControls ranks the workspace's controls for a risk
func (uc *RecommendUseCase) RecommendControls(ctx context.Context, workspaceID types.WorkspaceID, riskID model.RiskID, opts ...relevance.RankOption) ([]model.RankedControl, error) {
	if _, err := uc.registry.Get(workspaceID); err != nil {
		return nil, err
	}

	risk, err := uc.getRisk(ctx, workspaceID, riskID)
	if err != nil {
		return nil, err
	}

	controls, err := uc.repo.Control().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(WorkspaceIDKey, workspaceID))
	}

	ranked := relevance.RankControlsForRisk(risk, controls, opts...)
	logging.From(ctx).Debug("ranked controls for risk",
		"workspace_id", workspaceID,
		"risk_id", riskID,
		"candidates", len(controls),
		"recommended", len(ranked),
	)
	return ranked, nil
}

// RecommendRisks ranks the workspace's risks for a control
func (uc *RecommendUseCase) RecommendRisks(ctx context.Context, workspaceID types.WorkspaceID, controlID model.ControlID, opts ...relevance.RankOption) ([]model.RankedRisk, error) {
	if _, err := uc.registry.Get(workspaceID); err != nil {
		return nil, err
	}

	control, err := uc.getControl(ctx, workspaceID, controlID)
	if err != nil {
		return nil, err
	}

	risks, err := uc.repo.Risk().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WorkspaceIDKey, workspaceID))
	}

	ranked := relevance.RankRisksForControl(control, risks, opts...)
	logging.From(ctx).Debug("ranked risks for control",
		"workspace_id", workspaceID,
		"control_id", controlID,
		"candidates", len(risks),
		"recommended", len(ranked),
	)
	return ranked, nil
}

// ScorePair scores a single risk/control pair in both directions
func (uc *RecommendUseCase) ScorePair(ctx context.Context, workspaceID types.WorkspaceID, riskID model.RiskID, controlID model.ControlID) (*model.PairScore, error) {
	if _, err := uc.registry.Get(workspaceID); err != nil {
		return nil, err
	}

	risk, err := uc.getRisk(ctx, workspaceID, riskID)
	if err != nil {
		return nil, err
	}
	control, err := uc.getControl(ctx, workspaceID, controlID)
	if err != nil {
		return nil, err
	}

	return &model.PairScore{
		RiskID:         riskID,
		ControlID:      controlID,
		ControlForRisk: relevance.ScoreControlForRisk(control, risk),
		RiskForControl: relevance.ScoreRiskForControl(risk, control),
	}, nil
}

// Coverage ranks every control for every risk of the workspace. Risks are
// processed in parallel; the report keeps the repository order.
func (uc *RecommendUseCase) Coverage(ctx context.Context, workspaceID types.WorkspaceID, opts ...relevance.RankOption) (*model.CoverageReport, error) {
	if _, err := uc.registry.Get(workspaceID); err != nil {
		return nil, err
	}

	risks, err := uc.repo.Risk().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WorkspaceIDKey, workspaceID))
	}
	controls, err := uc.repo.Control().List(ctx, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls", goerr.V(WorkspaceIDKey, workspaceID))
	}

	report := &model.CoverageReport{
		WorkspaceID: workspaceID.String(),
		Risks:       make([]model.RiskCoverage, len(risks)),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)
	for i, risk := range risks {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return goerr.Wrap(err, "coverage canceled", goerr.V(RiskIDKey, risk.ID))
			}
			report.Risks[i] = model.RiskCoverage{
				Risk:        risk,
				Recommended: relevance.RankControlsForRisk(risk, controls, opts...),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("coverage computed",
		"workspace_id", workspaceID,
		"risks", len(risks),
		"controls", len(controls),
		"uncovered", len(report.Uncovered()),
	)
	return report, nil
}

func (uc *RecommendUseCase) getRisk(ctx context.Context, workspaceID types.WorkspaceID, riskID model.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, workspaceID, riskID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrRiskNotFound, "risk not found",
				goerr.V(WorkspaceIDKey, workspaceID), goerr.V(RiskIDKey, riskID))
		}
		return nil, goerr.Wrap(err, "failed to get risk",
			goerr.V(WorkspaceIDKey, workspaceID), goerr.V(RiskIDKey, riskID))
	}
	return risk, nil
}

func (uc *RecommendUseCase) getControl(ctx context.Context, workspaceID types.WorkspaceID, controlID model.ControlID) (*model.Control, error) {
	control, err := uc.repo.Control().Get(ctx, workspaceID, controlID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrControlNotFound, "control not found",
				goerr.V(WorkspaceIDKey, workspaceID), goerr.V(ControlIDKey, controlID))
		}
		return nil, goerr.Wrap(err, "failed to get control",
			goerr.V(WorkspaceIDKey, workspaceID), goerr.V(ControlIDKey, controlID))
	}
	return control, nil
}
