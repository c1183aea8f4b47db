package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"yuquest/internal/mandala"
)

func TestCellRuneByStatus(t *testing.T) {
	cases := map[mandala.CellStatus]string{
		mandala.StatusCoreValue: "◉",
		mandala.StatusCompleted: "●",
		mandala.StatusUnlocked:  "○",
		mandala.StatusLocked:    "·",
	}
	for status, want := range cases {
		glyph, render := cellRune(mandala.Cell{Status: status})
		if glyph != want {
			t.Fatalf("cellRune(%s)=%q, want %q", status, glyph, want)
		}
		if render(glyph) == "" {
			t.Fatalf("cellRune(%s): empty render", status)
		}
	}
}

func TestBoardViewRendersGrid(t *testing.T) {
	g := mandala.NewGrid("u1", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	m := boardModel{grid: g, curRow: 4, curCol: 4, lastLog: "Loaded."}

	out := m.View()
	if !strings.Contains(out, "Mandala") {
		t.Fatalf("missing heading in view:\n%s", out)
	}
	// The cursor starts on the center core value.
	if !strings.Contains(out, "Core Self") {
		t.Fatalf("missing core value name under cursor:\n%s", out)
	}
	if !strings.Contains(out, "Loaded.") {
		t.Fatalf("missing status line:\n%s", out)
	}
}

func TestBoardCursorStaysInBounds(t *testing.T) {
	g := mandala.NewGrid("u1", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	m := boardModel{grid: g}

	for i := 0; i < 20; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(boardModel)
	}
	if m.curRow != 0 {
		t.Fatalf("curRow=%d, want 0", m.curRow)
	}
	for i := 0; i < 20; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(boardModel)
	}
	if m.curCol != mandala.GridSize-1 {
		t.Fatalf("curCol=%d, want %d", m.curCol, mandala.GridSize-1)
	}
}
