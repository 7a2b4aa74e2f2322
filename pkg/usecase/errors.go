package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrRiskNotFound    = goerr.New("risk not found")
	ErrControlNotFound = goerr.New("control not found")
)

// Context keys for error values
const (
	WorkspaceIDKey = "workspace_id"
	RiskIDKey      = "risk_id"
	ControlIDKey   = "control_id"
)
