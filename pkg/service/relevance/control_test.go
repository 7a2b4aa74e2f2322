package relevance_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
)

func TestScoreControlForRisk_NilArguments(t *testing.T) {
	risk := &model.Risk{Category: types.RiskCategoryFinancial}
	control := &model.Control{MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryFinancial}}

	for name, got := range map[string]model.MatchResult{
		"nil control": relevance.ScoreControlForRisk(nil, risk),
		"nil risk":    relevance.ScoreControlForRisk(control, nil),
		"both nil":    relevance.ScoreControlForRisk(nil, nil),
	} {
		t.Run(name, func(t *testing.T) {
			gt.Value(t, got.Score).Equal(0)
			gt.Bool(t, got.IsRecommended).False()
			gt.Value(t, got.Reasons).Equal([]string{})
			gt.Value(t, got.MatchedKeywords).Equal([]string{})
		})
	}
}

func TestScoreControlForRisk_CategoryTypeCatastrophic(t *testing.T) {
	risk := &model.Risk{
		Category:     types.RiskCategoryOperational,
		InherentRisk: 16,
		Department:   "ops",
		Consequences: []string{"could cause bankruptcy"},
	}
	control := &model.Control{
		Type:                    types.ControlTypePreventive,
		MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryOperational},
		MitigatesRiskKeywords:   []string{},
		Department:              "ops",
	}

	got := relevance.ScoreControlForRisk(control, risk)
	gt.Value(t, got.Score).Equal(65)
	gt.Bool(t, got.IsRecommended).True()
	gt.Array(t, got.Reasons).Length(3)
	gt.String(t, got.Reasons[0]).Contains("operational")
	gt.String(t, got.Reasons[1]).Contains("catastrophic")
	gt.String(t, got.Reasons[2]).Contains("ops")
	gt.Value(t, got.ControlName).Equal(model.UnknownControlName)
}

func TestScoreControlForRisk_EmptyInputs(t *testing.T) {
	got := relevance.ScoreControlForRisk(&model.Control{}, &model.Risk{})
	gt.Value(t, got.Score).Equal(0)
	gt.Value(t, got.Reasons).Equal([]string{})
	gt.Bool(t, got.IsRecommended).False()
}

func TestScoreControlForRisk_KeywordCap(t *testing.T) {
	keywords := make([]string, 10)
	text := ""
	for i := range keywords {
		keywords[i] = fmt.Sprintf("term%02d", i)
		text += keywords[i] + " "
	}

	risk := &model.Risk{Description: text}
	control := &model.Control{MitigatesRiskKeywords: keywords}

	got := relevance.ScoreControlForRisk(control, risk)
	gt.Value(t, got.Score).Equal(25)
	gt.Array(t, got.MatchedKeywords).Length(5)
	gt.Value(t, got.Reasons).Equal([]string{"Keyword match: term00, term01, term02..."})
}

func TestScoreControlForRisk_KeywordsAreCaseInsensitive(t *testing.T) {
	risk := &model.Risk{Title: "Ransomware attack on file servers"}
	control := &model.Control{MitigatesRiskKeywords: []string{"RANSOMWARE", "phishing", "  ", "Servers"}}

	got := relevance.ScoreControlForRisk(control, risk)
	gt.Value(t, got.Score).Equal(10)
	gt.Value(t, got.MatchedKeywords).Equal([]string{"RANSOMWARE", "Servers"})
	gt.Value(t, got.Reasons).Equal([]string{"Keyword match: RANSOMWARE, Servers"})
}

func TestScoreControlForRisk_TypeAlignment(t *testing.T) {
	tests := []struct {
		name         string
		controlType  types.ControlType
		inherent     types.RiskScore
		causes       []string
		consequences []string
		want         int
	}{
		{"preventive high", types.ControlTypePreventive, 15, nil, nil, 15},
		{"preventive high with major consequences", types.ControlTypePreventive, 20, nil, []string{"serious injury"}, 20},
		{"preventive high with catastrophic consequences", types.ControlTypePreventive, 25, nil, []string{"fatality"}, 25},
		{"preventive below threshold", types.ControlTypePreventive, 14, nil, []string{"fatality"}, 0},
		{"detective medium", types.ControlTypeDetective, 9, nil, nil, 12},
		{"detective upper medium", types.ControlTypeDetective, 14.5, nil, nil, 12},
		{"detective low", types.ControlTypeDetective, 8, nil, nil, 10},
		{"detective unassessed", types.ControlTypeDetective, 0, nil, nil, 10},
		{"detective high", types.ControlTypeDetective, 16, nil, nil, 0},
		{"corrective", types.ControlTypeCorrective, 0, []string{"a", "b"}, nil, 8},
		{"corrective multi cause", types.ControlTypeCorrective, 0, []string{"a", "b", "c"}, nil, 13},
		{"directive", types.ControlTypeDirective, 20, nil, nil, 7},
		{"unknown type", types.ControlType("reactive"), 20, nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk := &model.Risk{
				InherentRisk: tt.inherent,
				Causes:       tt.causes,
				Consequences: tt.consequences,
			}
			got := relevance.ScoreControlForRisk(&model.Control{Type: tt.controlType}, risk)
			gt.Value(t, got.Score).Equal(tt.want)
			if tt.want > 0 {
				gt.Array(t, got.Reasons).Length(1)
			}
		})
	}
}

func TestScoreControlForRisk_SingleFactors(t *testing.T) {
	tests := []struct {
		name    string
		control *model.Control
		risk    *model.Risk
		want    int
	}{
		{
			name:    "department requires both sides",
			control: &model.Control{Department: ""},
			risk:    &model.Risk{Department: ""},
			want:    0,
		},
		{
			name:    "department mismatch",
			control: &model.Control{Department: "finance"},
			risk:    &model.Risk{Department: "ops"},
			want:    0,
		},
		{
			name:    "title similarity awarded once",
			control: &model.Control{Titles: []string{"Redundant servers", "Server monitoring"}},
			risk:    &model.Risk{Title: "Server outage in datacenter"},
			want:    10,
		},
		{
			name:    "title words of four characters are ignored",
			control: &model.Control{Titles: []string{"Data loss prevention"}},
			risk:    &model.Risk{Title: "Data loss"},
			want:    0,
		},
		{
			name:    "effective control",
			control: &model.Control{Effectiveness: types.EffectivenessEffective},
			risk:    &model.Risk{},
			want:    5,
		},
		{
			name:    "partially effective control",
			control: &model.Control{Effectiveness: types.EffectivenessPartiallyEffective},
			risk:    &model.Risk{},
			want:    0,
		},
		{
			name:    "plain language awarded once",
			control: &model.Control{PlainLanguage: []string{"someone steals a laptop", "Lost Device", "lost device"}},
			risk:    &model.Risk{Description: "A lost device exposes data"},
			want:    10,
		},
		{
			name:    "policy supports compliance",
			control: &model.Control{Category: types.ControlCategoryPolicy},
			risk:    &model.Risk{Category: types.RiskCategoryCompliance},
			want:    5,
		},
		{
			name:    "automated supports technology",
			control: &model.Control{Category: types.ControlCategoryAutomated},
			risk:    &model.Risk{Category: types.RiskCategoryTechnology},
			want:    5,
		},
		{
			name:    "physical supports hse",
			control: &model.Control{Category: types.ControlCategoryPhysical},
			risk:    &model.Risk{Category: types.RiskCategoryHSE},
			want:    5,
		},
		{
			name:    "other category pairs score nothing",
			control: &model.Control{Category: types.ControlCategoryPolicy},
			risk:    &model.Risk{Category: types.RiskCategoryTechnology},
			want:    0,
		},
		{
			name:    "unknown risk category never matches",
			control: &model.Control{MitigatesRiskCategories: []types.RiskCategory{"weather"}},
			risk:    &model.Risk{Category: "weather2"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relevance.ScoreControlForRisk(tt.control, tt.risk)
			gt.Value(t, got.Score).Equal(tt.want)
			gt.Value(t, got.IsRecommended).Equal(got.Score >= relevance.ControlRecommendationThreshold)
		})
	}
}

func TestScoreControlForRisk_ReasonOrderAndClamp(t *testing.T) {
	risk := &model.Risk{
		Title:        "Unpatched servers exploited",
		Category:     types.RiskCategoryTechnology,
		Department:   "it",
		InherentRisk: 20,
		Consequences: []string{"catastrophic data breach"},
		Causes:       []string{"missing patches"},
	}
	control := &model.Control{
		Titles:                  []string{"Automated patching of servers"},
		Type:                    types.ControlTypePreventive,
		Category:                types.ControlCategoryAutomated,
		Department:              "it",
		MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryTechnology},
		MitigatesRiskKeywords:   []string{"unpatched", "patches", "breach", "exploited", "servers"},
		PlainLanguage:           []string{"missing patches"},
		Effectiveness:           types.EffectivenessEffective,
	}

	got := relevance.ScoreControlForRisk(control, risk)
	// 30 + 25 + 25 + 10 + 10 + 5 + 10 + 5 = 120, clamped
	gt.Value(t, got.Score).Equal(100)
	gt.Bool(t, got.IsRecommended).True()
	gt.Array(t, got.Reasons).Length(8)
	gt.String(t, got.Reasons[0]).Contains("technology")
	gt.String(t, got.Reasons[1]).Contains("Keyword match")
	gt.String(t, got.Reasons[2]).Contains("Preventive")
	gt.String(t, got.Reasons[3]).Contains("department")
	gt.String(t, got.Reasons[4]).Contains("Title")
	gt.String(t, got.Reasons[5]).Contains("effective")
	gt.String(t, got.Reasons[6]).Contains("missing patches")
	gt.String(t, got.Reasons[7]).Contains("automated")
	gt.Value(t, got.ControlName).Equal("Automated patching of servers")
}

func TestScoreControlForRisk_Properties(t *testing.T) {
	risks, controls := propertyFixtures()

	for i, risk := range risks {
		for j, control := range controls {
			got := relevance.ScoreControlForRisk(control, risk)

			if got.Score < 0 || got.Score > 100 {
				t.Errorf("score out of bounds: risk=%d control=%d score=%d", i, j, got.Score)
			}
			gt.Value(t, got.IsRecommended).Equal(got.Score >= 60)
			gt.Value(t, len(got.Reasons) == 0).Equal(got.Score == 0)

			again := relevance.ScoreControlForRisk(control, risk)
			gt.Value(t, again).Equal(got)
		}
	}
}

func TestScoreControlForRisk_MonotonicKeywords(t *testing.T) {
	risk := &model.Risk{
		Title:       "Supplier insolvency",
		Description: "key supplier fails to deliver parts on time due to cash flow problems",
	}
	candidates := []string{"supplier", "deliver", "parts", "cash flow", "insolvency", "time", "problems"}

	control := &model.Control{MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryProject}}
	prev := relevance.ScoreControlForRisk(control, risk).Score
	for _, kw := range candidates {
		control.MitigatesRiskKeywords = append(control.MitigatesRiskKeywords, kw)
		score := relevance.ScoreControlForRisk(control, risk).Score
		if score < prev {
			t.Fatalf("adding keyword %q decreased score from %d to %d", kw, prev, score)
		}
		prev = score
	}
	gt.Value(t, prev).Equal(25)
}

func TestScoreControlForRisk_Concurrent(t *testing.T) {
	risks, controls := propertyFixtures()
	expected := relevance.ScoreControlForRisk(controls[0], risks[0])

	var wg sync.WaitGroup
	results := make([]model.MatchResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = relevance.ScoreControlForRisk(controls[0], risks[0])
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		gt.Value(t, r).Equal(expected)
	}
}

func propertyFixtures() ([]*model.Risk, []*model.Control) {
	risks := []*model.Risk{
		{},
		{
			Title:        "Warehouse flooding",
			Category:     types.RiskCategoryOperational,
			Department:   "ops",
			InherentRisk: 16,
			Causes:       []string{"heavy rain", "blocked drains", "river overflow"},
			Consequences: []string{"stock loss", "business closure"},
			Treatment:    types.TreatmentMitigate,
		},
		{
			Title:        "Late regulatory filing",
			Category:     types.RiskCategoryCompliance,
			InherentRisk: 10,
			Consequences: []string{"regulatory action", "significant fines"},
			Treatment:    types.TreatmentAccept,
		},
		{
			Title:        "Laptop theft",
			Category:     "unknown",
			InherentRisk: 4,
			Treatment:    "exploit",
		},
	}

	controls := []*model.Control{
		{},
		{
			Titles:                  []string{"Flood barriers"},
			Type:                    types.ControlTypePreventive,
			Category:                types.ControlCategoryPhysical,
			Department:              "ops",
			MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryOperational, types.RiskCategoryHSE},
			MitigatesRiskKeywords:   []string{"flood", "rain", "drains", "river", "stock", "warehouse"},
			PlainLanguage:           []string{"water gets in"},
			Effectiveness:           types.EffectivenessEffective,
		},
		{
			Name:                    "Compliance calendar",
			Type:                    types.ControlTypeDirective,
			Category:                types.ControlCategoryPolicy,
			MitigatesRiskCategories: []types.RiskCategory{types.RiskCategoryCompliance},
			MitigatesRiskKeywords:   []string{"filing", "regulatory"},
			PlainLanguage:           []string{"late regulatory filing"},
		},
		{
			Titles:        []string{"Asset tracking"},
			Type:          types.ControlTypeDetective,
			Category:      "software",
			Effectiveness: "great",
		},
	}

	return risks, controls
}
