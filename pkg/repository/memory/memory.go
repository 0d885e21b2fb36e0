package memory

import (
	"github.com/secmon-lab/vizopts/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	panel *panelRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		panel: newPanelRepository(),
	}
}

func (m *Memory) Panel() interfaces.PanelRepository {
	return m.panel
}

func (m *Memory) Close() error {
	return nil
}
