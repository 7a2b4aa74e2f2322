package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = goerr.New("not found")

// Repository gives access to the risk and control records of every workspace
type Repository interface {
	Risk() RiskRepository
	Control() ControlRepository
	Close() error
}
