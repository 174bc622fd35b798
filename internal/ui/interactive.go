// Package ui hosts the interactive terminal front end. The engine runs
// inside tea commands so the interactive loop never blocks on disk I/O.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupesweep/internal/config"
	"github.com/fenilsonani/dupesweep/internal/ui/models"
)

// Run starts the interactive duplicate picker
func Run(cfg *config.Config) error {
	p := tea.NewProgram(models.NewPicker(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
