package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/repository/memory"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
)

const testWorkspaceID types.WorkspaceID = "acme"

func buildSnapshot() *model.WorkspaceSnapshot {
	return &model.WorkspaceSnapshot{
		Workspace: model.Workspace{ID: testWorkspaceID, Name: "ACME"},
		Source:    "acme.toml",
		Risks: []*model.Risk{
			{
				ID:           "flood",
				Title:        "Warehouse flooding",
				Category:     types.RiskCategoryOperational,
				Department:   "ops",
				InherentRisk: 16,
				Consequences: []string{"could cause bankruptcy"},
				Treatment:    types.TreatmentMitigate,
			},
			{
				ID:           "fx",
				Title:        "FX exposure",
				Category:     types.RiskCategoryFinancial,
				InherentRisk: 10,
				Treatment:    types.TreatmentTransfer,
			},
		},
		Controls: []*model.Control{
			{
				// 30 + 25 + 10 + 5 against "flood"
				ID:                      "barrier",
				Titles:                  []string{"Flood barrier"},
				Type:                    types.ControlTypePreventive,
				Department:              "ops",
				MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryOperational},
				Effectiveness:           types.EffectivenessEffective,
			},
			{
				ID:                      "hedging",
				Titles:                  []string{"Currency hedging"},
				Type:                    types.ControlTypeDirective,
				MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryFinancial},
			},
		},
	}
}

func setupUseCases(t *testing.T, opts ...usecase.Option) (*memory.Memory, *usecase.UseCases) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo, model.NewWorkspaceRegistry(), opts...)
	gt.NoError(t, uc.Workspace.Import(context.Background(), buildSnapshot())).Required()
	return repo, uc
}
