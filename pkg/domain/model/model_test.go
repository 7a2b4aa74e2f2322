package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

func TestNewIDs(t *testing.T) {
	r1 := model.NewRiskID()
	r2 := model.NewRiskID()
	gt.Value(t, string(r1)).NotEqual("")
	gt.Value(t, r1).NotEqual(r2)

	c1 := model.NewControlID()
	c2 := model.NewControlID()
	gt.Value(t, string(c1)).NotEqual("")
	gt.Value(t, c1).NotEqual(c2)
}

func TestDeriveIDs(t *testing.T) {
	gt.Value(t, model.DeriveRiskID("acme", 0)).Equal(model.DeriveRiskID("acme", 0))
	gt.Value(t, model.DeriveRiskID("acme", 0)).NotEqual(model.DeriveRiskID("acme", 1))
	gt.Value(t, model.DeriveRiskID("acme", 0)).NotEqual(model.DeriveRiskID("globex", 0))
	gt.Value(t, string(model.DeriveRiskID("acme", 0))).NotEqual(string(model.DeriveControlID("acme", 0)))
	gt.Value(t, model.DeriveControlID("acme", 3)).Equal(model.DeriveControlID("acme", 3))
}

func TestControl_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		control *model.Control
		want    string
	}{
		{"nil control", nil, model.UnknownControlName},
		{"first title wins", &model.Control{Name: "n", Titles: []string{"Firewall", "FW"}}, "Firewall"},
		{"name fallback", &model.Control{Name: "Backups"}, "Backups"},
		{"empty first title falls back to name", &model.Control{Name: "Backups", Titles: []string{""}}, "Backups"},
		{"nothing set", &model.Control{}, model.UnknownControlName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.control.DisplayName()).Equal(tt.want)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	risk := &model.Risk{ID: "r-1", Causes: []string{"a"}, Consequences: []string{"b"}}
	cr := risk.Clone()
	cr.Causes[0] = "changed"
	gt.Value(t, risk.Causes[0]).Equal("a")

	control := &model.Control{
		ID:                      "c-1",
		Titles:                  []string{"t"},
		MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryHR},
	}
	cc := control.Clone()
	cc.Titles[0] = "changed"
	cc.MitigatesRiskCategories[0] = types.RiskCategoryHSE
	gt.Value(t, control.Titles[0]).Equal("t")
	gt.Value(t, control.MitigatesRiskCategories[0]).Equal(types.RiskCategoryHR)

	var nilRisk *model.Risk
	gt.Value(t, nilRisk.Clone()).Nil()
}

func TestCoverageReport_Uncovered(t *testing.T) {
	covered := &model.Risk{ID: "r-1"}
	uncovered := &model.Risk{ID: "r-2"}
	report := &model.CoverageReport{
		WorkspaceID: "acme",
		Risks: []model.RiskCoverage{
			{Risk: covered, Recommended: []model.RankedControl{{Score: 70}}},
			{Risk: uncovered},
		},
	}

	got := report.Uncovered()
	gt.Array(t, got).Length(1)
	gt.Value(t, got[0].ID).Equal(model.RiskID("r-2"))
}
