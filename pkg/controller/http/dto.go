package http

import (
	"encoding/json"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

type workspaceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type workspacesResponse struct {
	Workspaces []workspaceResponse `json:"workspaces"`
}

// riskBody is the JSON form of a risk, used both ways
type riskBody struct {
	ID           string          `json:"id,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Department   string          `json:"department,omitempty"`
	Causes       []string        `json:"causes,omitempty"`
	Consequences []string        `json:"consequences,omitempty"`
	InherentRisk types.RiskScore `json:"inherent_risk"`
	Treatment    string          `json:"treatment,omitempty"`
}

// UnmarshalJSON also accepts the camelCase keys used by browser clients.
// The snake_case key wins when both are present.
func (b *riskBody) UnmarshalJSON(data []byte) error {
	type plain riskBody
	var v struct {
		plain
		InherentRiskCamel *types.RiskScore `json:"inherentRisk"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = riskBody(v.plain)
	if b.InherentRisk == 0 && v.InherentRiskCamel != nil {
		b.InherentRisk = *v.InherentRiskCamel
	}
	return nil
}

// controlBody is the JSON form of a control, used both ways
type controlBody struct {
	ID                      string   `json:"id,omitempty"`
	Name                    string   `json:"name,omitempty"`
	Titles                  []string `json:"titles,omitempty"`
	Type                    string   `json:"type,omitempty"`
	Category                string   `json:"category,omitempty"`
	Department              string   `json:"department,omitempty"`
	MitigatesRiskCategories []string `json:"mitigates_risk_categories,omitempty"`
	MitigatesRiskKeywords   []string `json:"mitigates_risk_keywords,omitempty"`
	PlainLanguage           []string `json:"plain_language,omitempty"`
	Effectiveness           string   `json:"effectiveness,omitempty"`
}

// UnmarshalJSON also accepts the camelCase keys used by browser clients
func (b *controlBody) UnmarshalJSON(data []byte) error {
	type plain controlBody
	var v struct {
		plain
		MitigatesRiskCategoriesCamel []string `json:"mitigatesRiskCategories"`
		MitigatesRiskKeywordsCamel   []string `json:"mitigatesRiskKeywords"`
		PlainLanguageCamel           []string `json:"plainLanguage"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = controlBody(v.plain)
	if b.MitigatesRiskCategories == nil {
		b.MitigatesRiskCategories = v.MitigatesRiskCategoriesCamel
	}
	if b.MitigatesRiskKeywords == nil {
		b.MitigatesRiskKeywords = v.MitigatesRiskKeywordsCamel
	}
	if b.PlainLanguage == nil {
		b.PlainLanguage = v.PlainLanguageCamel
	}
	return nil
}

type matchResponse struct {
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	IsRecommended   bool     `json:"is_recommended"`
	ControlName     string   `json:"control_name,omitempty"`
	RiskTitle       string   `json:"risk_title,omitempty"`
}

type rankedControlResponse struct {
	Control         controlBody `json:"control"`
	Name            string      `json:"name"`
	Score           int         `json:"score"`
	Reasons         []string    `json:"reasons"`
	MatchedKeywords []string    `json:"matched_keywords"`
	IsRecommended   bool        `json:"is_recommended"`
}

type rankedRiskResponse struct {
	Risk            riskBody `json:"risk"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	IsRecommended   bool     `json:"is_recommended"`
}

type pairScoreResponse struct {
	RiskID         string        `json:"risk_id,omitempty"`
	ControlID      string        `json:"control_id,omitempty"`
	ControlForRisk matchResponse `json:"control_for_risk"`
	RiskForControl matchResponse `json:"risk_for_control"`
}

type scoreRequest struct {
	Risk    *riskBody    `json:"risk"`
	Control *controlBody `json:"control"`
}

type coverageControlResponse struct {
	ControlID string `json:"control_id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
}

type coverageRiskResponse struct {
	RiskID      string                    `json:"risk_id"`
	Title       string                    `json:"title"`
	Covered     bool                      `json:"covered"`
	Recommended []coverageControlResponse `json:"recommended"`
}

type coverageResponse struct {
	WorkspaceID string                 `json:"workspace_id"`
	Risks       []coverageRiskResponse `json:"risks"`
	Uncovered   []string               `json:"uncovered"`
}

func toRiskBody(r *model.Risk) riskBody {
	return riskBody{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category.String(),
		Department:   r.Department,
		Causes:       r.Causes,
		Consequences: r.Consequences,
		InherentRisk: r.InherentRisk,
		Treatment:    r.Treatment.String(),
	}
}

func (b *riskBody) toModel() *model.Risk {
	if b == nil {
		return nil
	}
	return &model.Risk{
		ID:           model.RiskID(b.ID),
		Title:        b.Title,
		Description:  b.Description,
		Category:     types.RiskCategory(b.Category),
		Department:   b.Department,
		Causes:       b.Causes,
		Consequences: b.Consequences,
		InherentRisk: b.InherentRisk,
		Treatment:    types.Treatment(b.Treatment),
	}
}

func toControlBody(c *model.Control) controlBody {
	categories := make([]string, len(c.MitigatesRiskCategories))
	for i, rc := range c.MitigatesRiskCategories {
		categories[i] = rc.String()
	}
	return controlBody{
		ID:                      c.ID.String(),
		Name:                    c.Name,
		Titles:                  c.Titles,
		Type:                    c.Type.String(),
		Category:                c.Category.String(),
		Department:              c.Department,
		MitigatesRiskCategories: categories,
		MitigatesRiskKeywords:   c.MitigatesRiskKeywords,
		PlainLanguage:           c.PlainLanguage,
		Effectiveness:           c.Effectiveness.String(),
	}
}

func (b *controlBody) toModel() *model.Control {
	if b == nil {
		return nil
	}
	categories := make([]types.RiskCategory, len(b.MitigatesRiskCategories))
	for i, rc := range b.MitigatesRiskCategories {
		categories[i] = types.RiskCategory(rc)
	}
	return &model.Control{
		ID:                      model.ControlID(b.ID),
		Name:                    b.Name,
		Titles:                  b.Titles,
		Type:                    types.ControlType(b.Type),
		Category:                types.ControlCategory(b.Category),
		Department:              b.Department,
		MitigatesRiskCategories: categories,
		MitigatesRiskKeywords:   b.MitigatesRiskKeywords,
		PlainLanguage:           b.PlainLanguage,
		Effectiveness:           types.Effectiveness(b.Effectiveness),
	}
}

func toMatchResponse(m model.MatchResult) matchResponse {
	return matchResponse{
		Score:           m.Score,
		Reasons:         m.Reasons,
		MatchedKeywords: m.MatchedKeywords,
		IsRecommended:   m.IsRecommended,
		ControlName:     m.ControlName,
		RiskTitle:       m.RiskTitle,
	}
}

func toRankedControls(ranked []model.RankedControl) []rankedControlResponse {
	resp := make([]rankedControlResponse, len(ranked))
	for i, rc := range ranked {
		resp[i] = rankedControlResponse{
			Control:         toControlBody(rc.Control),
			Name:            rc.Control.DisplayName(),
			Score:           rc.Score,
			Reasons:         rc.Reasons,
			MatchedKeywords: rc.MatchedKeywords,
			IsRecommended:   rc.IsRecommended,
		}
	}
	return resp
}

func toRankedRisks(ranked []model.RankedRisk) []rankedRiskResponse {
	resp := make([]rankedRiskResponse, len(ranked))
	for i, rr := range ranked {
		resp[i] = rankedRiskResponse{
			Risk:            toRiskBody(rr.Risk),
			Score:           rr.Score,
			Reasons:         rr.Reasons,
			MatchedKeywords: rr.MatchedKeywords,
			IsRecommended:   rr.IsRecommended,
		}
	}
	return resp
}

func toCoverageResponse(report *model.CoverageReport) coverageResponse {
	resp := coverageResponse{
		WorkspaceID: report.WorkspaceID,
		Risks:       make([]coverageRiskResponse, len(report.Risks)),
		Uncovered:   []string{},
	}
	for i := range report.Risks {
		rc := &report.Risks[i]
		controls := make([]coverageControlResponse, len(rc.Recommended))
		for j, c := range rc.Recommended {
			controls[j] = coverageControlResponse{
				ControlID: c.Control.ID.String(),
				Name:      c.Control.DisplayName(),
				Score:     c.Score,
			}
		}
		resp.Risks[i] = coverageRiskResponse{
			RiskID:      rc.Risk.ID.String(),
			Title:       rc.Risk.Title,
			Covered:     rc.Covered(),
			Recommended: controls,
		}
	}
	for _, r := range report.Uncovered() {
		resp.Uncovered = append(resp.Uncovered, r.ID.String())
	}
	return resp
}
