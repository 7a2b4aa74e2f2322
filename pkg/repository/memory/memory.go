package memory

import (
	"github.com/secmon-lab/riskmatch/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist in the workspace
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk    *riskRepository
	control *controlRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:    newRiskRepository(),
		control: newControlRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

// Close is a no-op for the in-memory backend
func (m *Memory) Close() error {
	return nil
}
