package model

import (
	"github.com/google/uuid"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// UnknownControlName is displayed for a control that has neither titles nor a name
const UnknownControlName = "Unknown Control"

// ControlID is the identifier of a control within a workspace
type ControlID string

// NewControlID generates a new UUID v4 ControlID
func NewControlID() ControlID {
	return ControlID(uuid.New().String())
}

// DeriveControlID is the control counterpart of DeriveRiskID
func DeriveControlID(workspaceID types.WorkspaceID, index int) ControlID {
	return ControlID(deriveID(workspaceID, "control", index))
}

func (id ControlID) String() string {
	return string(id)
}

// Control is a mitigating control as handed to the relevance engine
type Control struct {
	ID         ControlID
	Name       string
	Titles     []string // display-name variants, first one preferred
	Type       types.ControlType
	Category   types.ControlCategory
	Department string

	MitigatesRiskCategories []types.RiskCategory
	MitigatesRiskKeywords   []string
	PlainLanguage           []string // phrases describing what the control addresses

	Effectiveness types.Effectiveness
}

// DisplayName returns the first title, falling back to Name and then to
// UnknownControlName.
func (c *Control) DisplayName() string {
	if c == nil {
		return UnknownControlName
	}
	if len(c.Titles) > 0 && c.Titles[0] != "" {
		return c.Titles[0]
	}
	if c.Name != "" {
		return c.Name
	}
	return UnknownControlName
}

// Clone returns a deep copy of the control
func (c *Control) Clone() *Control {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Titles = cloneStrings(c.Titles)
	copied.MitigatesRiskKeywords = cloneStrings(c.MitigatesRiskKeywords)
	copied.PlainLanguage = cloneStrings(c.PlainLanguage)
	if c.MitigatesRiskCategories != nil {
		copied.MitigatesRiskCategories = make([]types.RiskCategory, len(c.MitigatesRiskCategories))
		copy(copied.MitigatesRiskCategories, c.MitigatesRiskCategories)
	}
	return &copied
}
