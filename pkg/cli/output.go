package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
)

var (
	headingColor   = color.New(color.Bold)
	recommendColor = color.New(color.FgGreen, color.Bold)
	nearColor      = color.New(color.FgYellow)
	lowColor       = color.New(color.FgRed)
	reasonColor    = color.New(color.Faint)
)

type matchView struct {
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	IsRecommended   bool     `json:"is_recommended"`
	ControlName     string   `json:"control_name,omitempty"`
	RiskTitle       string   `json:"risk_title,omitempty"`
}

type rankedView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	IsRecommended   bool     `json:"is_recommended"`
}

type coverageView struct {
	WorkspaceID string             `json:"workspace_id"`
	Risks       []coverageRiskView `json:"risks"`
	Uncovered   []string           `json:"uncovered"`
}

type coverageRiskView struct {
	RiskID      string       `json:"risk_id"`
	Title       string       `json:"title"`
	Covered     bool         `json:"covered"`
	Recommended []rankedView `json:"recommended"`
}

func toMatchView(m model.MatchResult) matchView {
	return matchView{
		Score:           m.Score,
		Reasons:         m.Reasons,
		MatchedKeywords: m.MatchedKeywords,
		IsRecommended:   m.IsRecommended,
		ControlName:     m.ControlName,
		RiskTitle:       m.RiskTitle,
	}
}

func controlViews(ranked []model.RankedControl) []rankedView {
	views := make([]rankedView, len(ranked))
	for i, rc := range ranked {
		views[i] = rankedView{
			ID:              rc.Control.ID.String(),
			Name:            rc.Control.DisplayName(),
			Score:           rc.Score,
			Reasons:         rc.Reasons,
			MatchedKeywords: rc.MatchedKeywords,
			IsRecommended:   rc.IsRecommended,
		}
	}
	return views
}

func riskViews(ranked []model.RankedRisk) []rankedView {
	views := make([]rankedView, len(ranked))
	for i, rr := range ranked {
		views[i] = rankedView{
			ID:              rr.Risk.ID.String(),
			Name:            rr.Risk.Title,
			Score:           rr.Score,
			Reasons:         rr.Reasons,
			MatchedKeywords: rr.MatchedKeywords,
			IsRecommended:   rr.IsRecommended,
		}
	}
	return views
}

func toCoverageView(report *model.CoverageReport) coverageView {
	view := coverageView{
		WorkspaceID: report.WorkspaceID,
		Risks:       make([]coverageRiskView, len(report.Risks)),
		Uncovered:   []string{},
	}
	for i := range report.Risks {
		rc := &report.Risks[i]
		view.Risks[i] = coverageRiskView{
			RiskID:      rc.Risk.ID.String(),
			Title:       rc.Risk.Title,
			Covered:     rc.Covered(),
			Recommended: controlViews(rc.Recommended),
		}
	}
	for _, r := range report.Uncovered() {
		view.Uncovered = append(view.Uncovered, r.ID.String())
	}
	return view
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode JSON output")
	}
	return nil
}

func scoreColor(score, threshold int) *color.Color {
	switch {
	case score >= threshold:
		return recommendColor
	case score >= threshold/2:
		return nearColor
	default:
		return lowColor
	}
}

func printRanked(w io.Writer, title string, views []rankedView, threshold int) {
	_, _ = headingColor.Fprintln(w, title)
	if len(views) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
		return
	}
	for _, v := range views {
		_, _ = fmt.Fprintf(w, "  %s  %s [%s]\n",
			scoreColor(v.Score, threshold).Sprintf("%3d", v.Score), v.Name, v.ID)
		for _, reason := range v.Reasons {
			_, _ = fmt.Fprintf(w, "       %s\n", reasonColor.Sprint("- "+reason))
		}
	}
}

func printMatch(w io.Writer, title string, m model.MatchResult, threshold int) {
	verdict := "not recommended"
	if m.IsRecommended {
		verdict = "recommended"
	}
	_, _ = fmt.Fprintf(w, "%s: %s (%s)\n",
		headingColor.Sprint(title), scoreColor(m.Score, threshold).Sprintf("%d", m.Score), verdict)
	if len(m.MatchedKeywords) > 0 {
		_, _ = fmt.Fprintf(w, "  keywords: %s\n", strings.Join(m.MatchedKeywords, ", "))
	}
	for _, reason := range m.Reasons {
		_, _ = fmt.Fprintf(w, "  %s\n", reasonColor.Sprint("- "+reason))
	}
}

func printCoverage(w io.Writer, view coverageView, threshold int) {
	_, _ = headingColor.Fprintf(w, "Coverage for workspace %s\n", view.WorkspaceID)
	for _, r := range view.Risks {
		status := recommendColor.Sprint("covered  ")
		if !r.Covered {
			status = lowColor.Sprint("UNCOVERED")
		}
		_, _ = fmt.Fprintf(w, "  %s  %s [%s]\n", status, r.Title, r.RiskID)
		for _, c := range r.Recommended {
			_, _ = fmt.Fprintf(w, "      %s  %s\n",
				scoreColor(c.Score, threshold).Sprintf("%3d", c.Score), c.Name)
		}
	}
	_, _ = fmt.Fprintf(w, "%d of %d risks uncovered\n", len(view.Uncovered), len(view.Risks))
}
