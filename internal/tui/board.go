package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"yuquest/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, uid string, out io.Writer) error {
	m := newBoardModel(ctx, svc, uid)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
