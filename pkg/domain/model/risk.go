package model

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

// recordIDNamespace scopes name-based IDs of records that were loaded without one
var recordIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("riskmatch:record"))

func deriveID(workspaceID types.WorkspaceID, kind string, index int) string {
	name := workspaceID.String() + "/" + kind + "/" + strconv.Itoa(index)
	return uuid.NewSHA1(recordIDNamespace, []byte(name)).String()
}

// RiskID is the identifier of a risk within a workspace
type RiskID string

// NewRiskID generates a new UUID v4 RiskID
func NewRiskID() RiskID {
	return RiskID(uuid.New().String())
}

// DeriveRiskID returns a stable RiskID for the risk at index of a workspace
// file. The same workspace and position always yield the same ID.
func DeriveRiskID(workspaceID types.WorkspaceID, index int) RiskID {
	return RiskID(deriveID(workspaceID, "risk", index))
}

func (id RiskID) String() string {
	return string(id)
}

// Risk is a recorded risk as handed to the relevance engine. Nil slices are
// treated as empty lists and a zero InherentRisk as "not assessed".
type Risk struct {
	ID           RiskID
	Title        string
	Description  string
	Category     types.RiskCategory
	Department   string
	Causes       []string
	Consequences []string
	InherentRisk types.RiskScore
	Treatment    types.Treatment
}

// Clone returns a deep copy of the risk
func (r *Risk) Clone() *Risk {
	if r == nil {
		return nil
	}
	copied := *r
	copied.Causes = cloneStrings(r.Causes)
	copied.Consequences = cloneStrings(r.Consequences)
	return &copied
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
