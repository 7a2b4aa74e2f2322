package relevance

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// ControlRecommendationThreshold is the score at which a control is
// recommended for a risk
const ControlRecommendationThreshold = 60

const (
	highInherentRisk   = 15
	mediumInherentRisk = 9

	preventiveHighRiskPoints    = 15
	catastrophicBonusPoints     = 10
	majorBonusPoints            = 5
	detectiveMediumRiskPoints   = 12
	detectiveLowRiskPoints      = 10
	correctivePoints            = 8
	correctiveMultiCausePoints  = 5
	directivePoints             = 7
	titleSimilarityPoints       = 10
	effectivenessPoints         = 5
	plainLanguagePoints         = 10
	crossCategoryPoints         = 5
	titleSimilarityMinWordRunes = 5
)

type categoryPair struct {
	control types.ControlCategory
	risk    types.RiskCategory
}

var crossCategoryPairs = []categoryPair{
	{types.ControlCategoryPolicy, types.RiskCategoryCompliance},
	{types.ControlCategoryAutomated, types.RiskCategoryTechnology},
	{types.ControlCategoryPhysical, types.RiskCategoryHSE},
}

// ScoreControlForRisk computes how relevant control is to risk. A nil argument
// yields an empty, non-recommended result.
func ScoreControlForRisk(control *model.Control, risk *model.Risk) model.MatchResult {
	if control == nil || risk == nil {
		return model.EmptyMatchResult()
	}

	text := BuildSearchableText(risk)
	sheet := newScoreSheet()

	sheet.add(categoryMatch(control, risk),
		fmt.Sprintf("Designed for %s risks", risk.Category))

	kwPoints, matched := keywordOverlap(control, text)
	sheet.add(kwPoints, keywordReason(matched))

	typePoints, typeReason := typeAlignment(control, risk)
	sheet.add(typePoints, typeReason)

	sheet.add(departmentMatch(control, risk),
		fmt.Sprintf("Same department: %s", risk.Department))

	titlePoints, titles := awardOnce(control.Titles, titleSimilarityPoints, titleMatcher(risk.Title))
	if len(titles) > 0 {
		sheet.add(titlePoints, fmt.Sprintf("Title similar to %q", titles[0]))
	}

	if control.Effectiveness == types.EffectivenessEffective {
		sheet.add(effectivenessPoints, "Control is rated effective")
	}

	plainPoints, phrases := awardOnce(control.PlainLanguage, plainLanguagePoints, func(p string) bool {
		return containsPhrase(text, p)
	})
	if len(phrases) > 0 {
		sheet.add(plainPoints, fmt.Sprintf("Addresses %q", phrases[0]))
	}

	if crossCategoryRelevant(control.Category, risk.Category) {
		sheet.add(crossCategoryPoints,
			fmt.Sprintf("%s controls support %s risks", control.Category, risk.Category))
	}

	score := sheet.score()
	return model.MatchResult{
		Score:           score,
		Reasons:         sheet.reasons,
		MatchedKeywords: matched,
		IsRecommended:   score >= ControlRecommendationThreshold,
		ControlName:     control.DisplayName(),
	}
}

// typeAlignment rates the control type against the risk's inherent level.
// The branches are mutually exclusive on control.Type.
func typeAlignment(control *model.Control, risk *model.Risk) (int, string) {
	inherent := risk.InherentRisk.Float64()

	switch control.Type {
	case types.ControlTypePreventive:
		if inherent < highInherentRisk {
			return 0, ""
		}
		points := preventiveHighRiskPoints
		reason := fmt.Sprintf("Preventive control for high inherent risk (%s)", formatInherent(inherent))
		switch AnalyzeConsequenceSeverity(risk).Level {
		case types.SeverityCatastrophic:
			points += catastrophicBonusPoints
			reason += " with catastrophic consequences"
		case types.SeverityMajor:
			points += majorBonusPoints
			reason += " with major consequences"
		}
		return points, reason

	case types.ControlTypeDetective:
		switch {
		case inherent >= highInherentRisk:
			return 0, ""
		case inherent >= mediumInherentRisk:
			return detectiveMediumRiskPoints, "Detective control suits medium inherent risk"
		default:
			return detectiveLowRiskPoints, "Detective control suits low inherent risk"
		}

	case types.ControlTypeCorrective:
		if AnalyzeCauseSeverity(risk).Count >= moderateCauseThreshold {
			return correctivePoints + correctiveMultiCausePoints, "Corrective control for a risk with multiple causes"
		}
		return correctivePoints, "Corrective control limits impact after occurrence"

	case types.ControlTypeDirective:
		return directivePoints, "Directive control guides behaviour"

	default:
		return 0, ""
	}
}

// titleMatcher reports whether a control title contains any word of the risk
// title that is longer than four characters
func titleMatcher(riskTitle string) func(string) bool {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(riskTitle)) {
		if utf8.RuneCountInString(w) >= titleSimilarityMinWordRunes {
			words = append(words, w)
		}
	}

	return func(title string) bool {
		lower := strings.ToLower(title)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
}

func crossCategoryRelevant(cc types.ControlCategory, rc types.RiskCategory) bool {
	for _, p := range crossCategoryPairs {
		if p.control == cc && p.risk == rc {
			return true
		}
	}
	return false
}
