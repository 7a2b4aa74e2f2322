package relevance

import (
	"strings"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

var (
	catastrophicKeywords = []string{
		"bankrupt", "fatality", "fatalities", "death", "fatal", "kill",
		"collapse", "closure", "shutdown", "liquidation", "insolvency",
		"catastrophic", "disaster", "terminal",
	}

	majorKeywords = []string{
		"injury", "injuries", "severe", "major", "significant", "substantial",
		"critical", "serious", "extensive", "widespread", "material loss",
		"regulatory action", "license revocation", "licence revocation",
		"permit revocation",
	}

	minorKeywords = []string{
		"minor", "small", "limited", "temporary", "delay", "inconvenience",
		"administrative",
	}
)

const (
	majorKeywordThreshold     = 2
	majorConsequenceThreshold = 4

	complexCauseThreshold  = 5
	moderateCauseThreshold = 3
)

// ConsequenceSeverity is the severity tier of a risk's consequences
type ConsequenceSeverity struct {
	Level    types.SeverityLevel
	Count    int
	Keywords []string // keywords that triggered the tier
}

// CauseSeverity is the structural complexity of a risk's causes
type CauseSeverity struct {
	Count      int
	Complexity types.CauseComplexity
}

// AnalyzeConsequenceSeverity classifies the recorded consequences. Tiers are
// checked catastrophic, major, minor; moderate is the fallback.
func AnalyzeConsequenceSeverity(risk *model.Risk) ConsequenceSeverity {
	result := ConsequenceSeverity{
		Level:    types.SeverityModerate,
		Keywords: []string{},
	}
	if risk == nil {
		return result
	}

	result.Count = len(risk.Consequences)
	text := strings.ToLower(strings.Join(risk.Consequences, " "))

	if kw, ok := firstContained(text, catastrophicKeywords); ok {
		result.Level = types.SeverityCatastrophic
		result.Keywords = []string{kw}
		return result
	}

	major := allContained(text, majorKeywords)
	if len(major) >= majorKeywordThreshold || result.Count >= majorConsequenceThreshold {
		result.Level = types.SeverityMajor
		result.Keywords = major
		return result
	}

	if kw, ok := firstContained(text, minorKeywords); ok {
		result.Level = types.SeverityMinor
		result.Keywords = []string{kw}
	}

	return result
}

// AnalyzeCauseSeverity grades the number of recorded causes
func AnalyzeCauseSeverity(risk *model.Risk) CauseSeverity {
	var count int
	if risk != nil {
		count = len(risk.Causes)
	}

	switch {
	case count >= complexCauseThreshold:
		return CauseSeverity{Count: count, Complexity: types.CauseComplexityComplex}
	case count >= moderateCauseThreshold:
		return CauseSeverity{Count: count, Complexity: types.CauseComplexityModerate}
	default:
		return CauseSeverity{Count: count, Complexity: types.CauseComplexitySimple}
	}
}

func firstContained(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func allContained(text string, keywords []string) []string {
	matched := []string{}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
