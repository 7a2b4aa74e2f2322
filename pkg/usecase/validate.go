package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

const maxInherentRisk = 25

// ValidationIssue is a record value the relevance engine tolerates but that
// will never contribute to a score
type ValidationIssue struct {
	WorkspaceID types.WorkspaceID
	Kind        string // "risk" or "control"
	RecordID    string
	Field       string
	Message     string
	Actual      string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s %s: %s: %s (actual: %q)",
		i.WorkspaceID, i.Kind, i.RecordID, i.Field, i.Message, i.Actual)
}

// ValidationResult holds the results of a lint run
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// Lint inspects every registered workspace for values that silently fail to
// match: unknown enum tags, blank keywords and phrases, out-of-range inherent
// risk and controls without a display name. It does NOT modify any data.
func (uc *UseCases) Lint(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	for _, entry := range uc.registry.List() {
		wsID := entry.Workspace.ID

		risks, err := uc.repo.Risk().List(ctx, wsID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WorkspaceIDKey, wsID))
		}
		for _, risk := range risks {
			lintRisk(result, wsID, risk)
		}

		controls, err := uc.repo.Control().List(ctx, wsID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list controls", goerr.V(WorkspaceIDKey, wsID))
		}
		for _, control := range controls {
			lintControl(result, wsID, control)
		}
	}

	return result, nil
}

func lintRisk(result *ValidationResult, wsID types.WorkspaceID, risk *model.Risk) {
	add := func(field, msg, actual string) {
		result.AddIssue(ValidationIssue{
			WorkspaceID: wsID,
			Kind:        "risk",
			RecordID:    risk.ID.String(),
			Field:       field,
			Message:     msg,
			Actual:      actual,
		})
	}

	if risk.Category != "" && !risk.Category.IsValid() {
		add("category", "unknown risk category", risk.Category.String())
	}
	if risk.Treatment != "" && !risk.Treatment.IsValid() {
		add("treatment", "unknown treatment", risk.Treatment.String())
	}
	if v := risk.InherentRisk.Float64(); v < 0 || v > maxInherentRisk {
		add("inherent_risk", "inherent risk outside 0-25", fmt.Sprint(v))
	}
}

func lintControl(result *ValidationResult, wsID types.WorkspaceID, control *model.Control) {
	add := func(field, msg, actual string) {
		result.AddIssue(ValidationIssue{
			WorkspaceID: wsID,
			Kind:        "control",
			RecordID:    control.ID.String(),
			Field:       field,
			Message:     msg,
			Actual:      actual,
		})
	}

	if control.DisplayName() == model.UnknownControlName {
		add("titles", "control has no title or name", "")
	}
	if control.Type != "" && !control.Type.IsValid() {
		add("type", "unknown control type", control.Type.String())
	}
	if control.Category != "" && !control.Category.IsValid() {
		add("category", "unknown control category", control.Category.String())
	}
	if control.Effectiveness != "" && !control.Effectiveness.IsValid() {
		add("effectiveness", "unknown effectiveness", control.Effectiveness.String())
	}
	for _, c := range control.MitigatesRiskCategories {
		if !c.IsValid() {
			add("mitigates_risk_categories", "unknown risk category", c.String())
		}
	}
	for i, kw := range control.MitigatesRiskKeywords {
		if strings.TrimSpace(kw) == "" {
			add("mitigates_risk_keywords", fmt.Sprintf("blank keyword at index %d", i), kw)
		}
	}
	for i, p := range control.PlainLanguage {
		if strings.TrimSpace(p) == "" {
			add("plain_language", fmt.Sprintf("blank phrase at index %d", i), p)
		}
	}
}
