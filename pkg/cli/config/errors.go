package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrNoWorkspace        = goerr.New("no workspace file given")
	ErrDuplicateWorkspace = goerr.New("duplicate workspace ID")
	ErrDuplicateRiskID    = goerr.New("duplicate risk ID")
	ErrDuplicateControlID = goerr.New("duplicate control ID")
	ErrMissingTitle       = goerr.New("title is required")
	ErrMissingName        = goerr.New("name is required")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	WorkspaceIDKey = "workspace_id"
	RiskIDKey      = "risk_id"
	ControlIDKey   = "control_id"
	RecordIndexKey = "record_index"
	LogLevelKey    = "log_level"
	LogFormatKey   = "log_format"
)
