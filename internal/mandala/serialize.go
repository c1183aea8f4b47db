package mandala

import (
	"encoding/json"
	"fmt"
	"time"
)

// serializedGrid is the persisted document. Persisted state is the only
// record of progress between requests, so Serialize/Deserialize must
// round-trip exactly. The grid travels as slices rather than a fixed
// array: unmarshaling into an array would silently truncate extra rows
// and zero-fill missing ones, and a mis-shaped document must fail loudly
// instead.
type serializedGrid struct {
	UID           string    `json:"uid"`
	Grid          [][]Cell  `json:"grid"`
	UnlockedCount int       `json:"unlocked_count"`
	TotalCells    int       `json:"total_cells"`
	CoreValues    [][2]int  `json:"core_values"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Serialize encodes the grid as a single JSON document.
func Serialize(g *Grid) ([]byte, error) {
	rows := make([][]Cell, GridSize)
	for r := 0; r < GridSize; r++ {
		row := make([]Cell, GridSize)
		copy(row, g.Cells[r][:])
		rows[r] = row
	}

	doc := serializedGrid{
		UID:           g.UID,
		Grid:          rows,
		UnlockedCount: g.UnlockedCount,
		TotalCells:    TotalCells,
		CoreValues:    CoreValuePositions(),
		UpdatedAt:     g.UpdatedAt,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize grid %s: %w", g.UID, err)
	}
	return data, nil
}

// Deserialize decodes and validates a persisted grid. Invariant failures
// (wrong shape, mutated core block, count drift) are surfaced loudly and
// never auto-corrected.
func Deserialize(data []byte) (*Grid, error) {
	var doc serializedGrid
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("deserialize grid: %w", err)
	}
	if doc.TotalCells != TotalCells {
		return nil, fmt.Errorf("deserialize grid %s: total_cells %d, want %d", doc.UID, doc.TotalCells, TotalCells)
	}
	if len(doc.Grid) != GridSize {
		return nil, fmt.Errorf("deserialize grid %s: %d rows, want %d", doc.UID, len(doc.Grid), GridSize)
	}

	g := &Grid{
		UID:           doc.UID,
		UnlockedCount: doc.UnlockedCount,
		UpdatedAt:     doc.UpdatedAt,
	}
	for r, row := range doc.Grid {
		if len(row) != GridSize {
			return nil, fmt.Errorf("deserialize grid %s: row %d has %d cells, want %d", doc.UID, r, len(row), GridSize)
		}
		copy(g.Cells[r][:], row)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
