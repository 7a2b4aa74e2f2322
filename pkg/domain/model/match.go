package model

// MatchResult is the outcome of scoring one risk against one control. It has
// no identity and is recomputed on every call.
type MatchResult struct {
	Score           int // 0..100
	Reasons         []string
	MatchedKeywords []string
	IsRecommended   bool

	// ControlName is set when a control is scored for a risk
	ControlName string
	// RiskTitle is set when a risk is scored for a control
	RiskTitle string
}

// EmptyMatchResult returns the result used when either side is missing
func EmptyMatchResult() MatchResult {
	return MatchResult{
		Reasons:         []string{},
		MatchedKeywords: []string{},
	}
}

// RankedControl is a control recommended for a risk
type RankedControl struct {
	Control         *Control
	Score           int
	Reasons         []string
	MatchedKeywords []string
	IsRecommended   bool
}

// RankedRisk is a risk recommended for a control
type RankedRisk struct {
	Risk            *Risk
	Score           int
	Reasons         []string
	MatchedKeywords []string
	IsRecommended   bool
}

// PairScore holds both scoring directions for a single risk/control pair
type PairScore struct {
	RiskID         RiskID
	ControlID      ControlID
	ControlForRisk MatchResult
	RiskForControl MatchResult
}

// RiskCoverage summarizes how well a single risk is covered by the controls of
// its workspace
type RiskCoverage struct {
	Risk        *Risk
	Recommended []RankedControl
}

// Covered reports whether at least one control is recommended for the risk
func (c *RiskCoverage) Covered() bool {
	return len(c.Recommended) > 0
}

// CoverageReport is the per-workspace coverage summary
type CoverageReport struct {
	WorkspaceID string
	Risks       []RiskCoverage
}

// Uncovered returns the risks with no recommended control, in report order
func (r *CoverageReport) Uncovered() []*Risk {
	var risks []*Risk
	for i := range r.Risks {
		if !r.Risks[i].Covered() {
			risks = append(risks, r.Risks[i].Risk)
		}
	}
	return risks
}
