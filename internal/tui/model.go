package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"yuquest/internal/engine"
	"yuquest/internal/mandala"
	"yuquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	uid string

	width  int
	height int

	grid   *mandala.Grid
	status *engine.CombinedStatus

	curRow int
	curCol int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	grid   *mandala.Grid
	status *engine.CombinedStatus
	err    error
}

type completedCellMsg struct {
	res    *engine.CellCompleteResult
	reason mandala.Reason
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service, uid string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		uid:     uid,
		curRow:  4,
		curCol:  4,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		g, err := m.svc.GetGrid(m.ctx, m.uid)
		if err != nil {
			return loadedMsg{err: err}
		}
		st, err := m.svc.Status(m.ctx, m.uid)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{grid: g, status: st}
	}
}

func (m boardModel) completeCmd(row, col int) tea.Cmd {
	return func() tea.Msg {
		res, reason, err := m.svc.CompleteCell(m.ctx, m.uid, row, col)
		return completedCellMsg{res: res, reason: reason, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.grid = msg.grid
		m.status = msg.status
		return m, nil
	case completedCellMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Not allowed: " + string(msg.reason)
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed (%d,%d): quest worth %d XP", msg.res.Row, msg.res.Col, msg.res.XPReward)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.curRow > 0 {
				m.curRow--
			}
			return m, nil
		case "down", "j":
			if m.curRow < mandala.GridSize-1 {
				m.curRow++
			}
			return m, nil
		case "left", "h":
			if m.curCol > 0 {
				m.curCol--
			}
			return m, nil
		case "right", "l":
			if m.curCol < mandala.GridSize-1 {
				m.curCol++
			}
			return m, nil
		case "c", " ", "enter":
			return m, m.completeCmd(m.curRow, m.curCol)
		}
	}
	return m, nil
}

func cellRune(c mandala.Cell) (string, func(...string) string) {
	switch c.Status {
	case mandala.StatusCoreValue:
		return "◉", ui.CellCore.Render
	case mandala.StatusCompleted:
		return "●", ui.CellCompleted.Render
	case mandala.StatusUnlocked:
		return "○", ui.CellUnlocked.Render
	default:
		return "·", ui.CellLocked.Render
	}
}

func (m boardModel) View() string {
	if m.loading && m.grid == nil {
		return "Loading…"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconMandala, "Mandala") + "\n\n")

	for r := 0; r < mandala.GridSize; r++ {
		for c := 0; c < mandala.GridSize; c++ {
			glyph, render := cellRune(m.grid.Cells[r][c])
			if r == m.curRow && c == m.curCol {
				b.WriteString(ui.CellCursor.Render(glyph))
			} else {
				b.WriteString(render(glyph))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cur := m.grid.Cells[m.curRow][m.curCol]
	switch {
	case cur.Status == mandala.StatusCoreValue:
		b.WriteString(ui.LabelValue("Core value", ui.Gold.Render(cur.Quest.Title)) + "\n")
	case cur.Quest.Title != "":
		b.WriteString(ui.LabelValue("Quest", cur.Quest.Title) + " " + ui.Muted.Render(fmt.Sprintf("(%d XP)", cur.Quest.XPReward)) + "\n")
	default:
		b.WriteString(ui.Muted.Render("Locked cell.") + "\n")
	}

	if m.status != nil {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			ui.LabelValue("Player", fmt.Sprintf("lvl %d", m.status.Player.Level)),
			ui.LabelValue("Yu", fmt.Sprintf("lvl %d", m.status.CompanionLevel)),
			ui.LabelValue("Unlocked", fmt.Sprintf("%d/%d", m.grid.UnlockedCount, mandala.TotalCells-9)),
		))
	}

	b.WriteString("\n" + ui.Dim.Render("↑↓←→ move · c complete · r refresh · q quit") + "\n")
	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	return b.String()
}
