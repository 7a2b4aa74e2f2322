package relevance

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
)

const (
	maxScore = 100

	categoryMatchPoints   = 30
	keywordPoints         = 5
	keywordPointsLimit    = 25
	departmentMatchPoints = 10

	displayedKeywords = 3
)

// scoreSheet accumulates points and reasons in factor-evaluation order
type scoreSheet struct {
	total   int
	reasons []string
}

func newScoreSheet() *scoreSheet {
	return &scoreSheet{reasons: []string{}}
}

// add records a factor only when it contributes points
func (s *scoreSheet) add(points int, reason string) {
	if points <= 0 {
		return
	}
	s.total += points
	s.reasons = append(s.reasons, reason)
}

// score returns the clamped total
func (s *scoreSheet) score() int {
	switch {
	case s.total > maxScore:
		return maxScore
	case s.total < 0:
		return 0
	default:
		return s.total
	}
}

func categoryMatch(control *model.Control, risk *model.Risk) int {
	if risk.Category == "" {
		return 0
	}
	if slices.Contains(control.MitigatesRiskCategories, risk.Category) {
		return categoryMatchPoints
	}
	return 0
}

// keywordOverlap awards keywordPoints per control keyword found in the risk
// text, up to keywordPointsLimit. Blank keywords never match.
func keywordOverlap(control *model.Control, text string) (int, []string) {
	return boundedFold(control.MitigatesRiskKeywords, keywordPoints, keywordPointsLimit, func(kw string) bool {
		return containsPhrase(text, kw)
	})
}

func departmentMatch(control *model.Control, risk *model.Risk) int {
	if control.Department == "" || risk.Department == "" {
		return 0
	}
	if control.Department == risk.Department {
		return departmentMatchPoints
	}
	return 0
}

func containsPhrase(text, phrase string) bool {
	if strings.TrimSpace(phrase) == "" {
		return false
	}
	return strings.Contains(text, strings.ToLower(phrase))
}

func keywordReason(matched []string) string {
	shown := matched
	suffix := ""
	if len(matched) > displayedKeywords {
		shown = matched[:displayedKeywords]
		suffix = "..."
	}
	return fmt.Sprintf("Keyword match: %s%s", strings.Join(shown, ", "), suffix)
}

func formatInherent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
