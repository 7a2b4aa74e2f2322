package relevance

import (
	"fmt"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// RiskRecommendationThreshold is the score at which a risk is recommended for
// a control. It is calibrated independently from the control direction.
const RiskRecommendationThreshold = 50

const (
	highSeverityPoints   = 20
	mediumSeverityPoints = 15
	lowSeverityPoints    = 10

	treatmentReducePoints   = 15
	treatmentTransferPoints = 10
	treatmentAcceptPoints   = 5
)

// ScoreRiskForControl computes how relevant risk is to control. A nil argument
// yields an empty, non-recommended result.
func ScoreRiskForControl(risk *model.Risk, control *model.Control) model.MatchResult {
	if risk == nil || control == nil {
		return model.EmptyMatchResult()
	}

	text := BuildSearchableText(risk)
	sheet := newScoreSheet()

	sheet.add(categoryMatch(control, risk),
		fmt.Sprintf("Category %s is covered by this control", risk.Category))

	kwPoints, matched := keywordOverlap(control, text)
	sheet.add(kwPoints, keywordReason(matched))

	sheet.add(severityTier(risk.InherentRisk.Float64()))

	sheet.add(departmentMatch(control, risk),
		fmt.Sprintf("Same department: %s", risk.Department))

	sheet.add(treatmentAlignment(risk.Treatment))

	score := sheet.score()
	return model.MatchResult{
		Score:           score,
		Reasons:         sheet.reasons,
		MatchedKeywords: matched,
		IsRecommended:   score >= RiskRecommendationThreshold,
		RiskTitle:       risk.Title,
	}
}

func severityTier(inherent float64) (int, string) {
	switch {
	case inherent >= highInherentRisk:
		return highSeverityPoints, fmt.Sprintf("High inherent risk (%s)", formatInherent(inherent))
	case inherent >= mediumInherentRisk:
		return mediumSeverityPoints, fmt.Sprintf("Medium inherent risk (%s)", formatInherent(inherent))
	default:
		return lowSeverityPoints, "Low inherent risk"
	}
}

func treatmentAlignment(t types.Treatment) (int, string) {
	switch t {
	case types.TreatmentMitigate, types.TreatmentReduce:
		return treatmentReducePoints, fmt.Sprintf("Treatment %q calls for controls", t)
	case types.TreatmentTransfer:
		return treatmentTransferPoints, "Transferred risk still benefits from controls"
	case types.TreatmentAccept:
		return treatmentAcceptPoints, "Accepted risk can be monitored by controls"
	default:
		return 0, ""
	}
}
