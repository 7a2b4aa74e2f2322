package relevance

import (
	"slices"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
)

type rankConfig struct {
	minScore *int
}

// RankOption configures RankControlsForRisk and RankRisksForControl
type RankOption func(*rankConfig)

// WithMinScore overrides the minimum score an item needs to be kept
func WithMinScore(score int) RankOption {
	return func(c *rankConfig) {
		c.minScore = &score
	}
}

func resolveMinScore(def int, opts []RankOption) int {
	var cfg rankConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.minScore == nil {
		return def
	}
	return *cfg.minScore
}

// RankControlsForRisk scores every control for risk, keeps those reaching the
// minimum score (ControlRecommendationThreshold unless overridden) and orders
// them by descending score. Ties keep their input order. Nil controls are
// skipped.
func RankControlsForRisk(risk *model.Risk, controls []*model.Control, opts ...RankOption) []model.RankedControl {
	minScore := resolveMinScore(ControlRecommendationThreshold, opts)

	ranked := []model.RankedControl{}
	if risk == nil {
		return ranked
	}

	for _, control := range controls {
		if control == nil {
			continue
		}
		result := ScoreControlForRisk(control, risk)
		if result.Score < minScore {
			continue
		}
		ranked = append(ranked, model.RankedControl{
			Control:         control,
			Score:           result.Score,
			Reasons:         result.Reasons,
			MatchedKeywords: result.MatchedKeywords,
			IsRecommended:   true,
		})
	}

	slices.SortStableFunc(ranked, func(a, b model.RankedControl) int {
		return b.Score - a.Score
	})
	return ranked
}

// RankRisksForControl is the mirror of RankControlsForRisk. The default
// minimum score is RiskRecommendationThreshold.
func RankRisksForControl(control *model.Control, risks []*model.Risk, opts ...RankOption) []model.RankedRisk {
	minScore := resolveMinScore(RiskRecommendationThreshold, opts)

	ranked := []model.RankedRisk{}
	if control == nil {
		return ranked
	}

	for _, risk := range risks {
		if risk == nil {
			continue
		}
		result := ScoreRiskForControl(risk, control)
		if result.Score < minScore {
			continue
		}
		ranked = append(ranked, model.RankedRisk{
			Risk:            risk,
			Score:           result.Score,
			Reasons:         result.Reasons,
			MatchedKeywords: result.MatchedKeywords,
			IsRecommended:   true,
		})
	}

	slices.SortStableFunc(ranked, func(a, b model.RankedRisk) int {
		return b.Score - a.Score
	})
	return ranked
}
