package mandala

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	g := NewGrid("u1", t0)
	quest := QuestData{
		Title:            "Morning Exercise",
		Description:      "30 minutes of light exercise",
		XPReward:         50,
		Difficulty:       2,
		TherapeuticFocus: "Mindfulness",
	}

	ok, _ := g.Unlock(2, 4, quest, AdjacencyOrthogonal, t0)
	require.True(t, ok)
	ok, _ = g.Unlock(2, 3, quest, AdjacencyOrthogonal, t0.Add(time.Minute))
	require.True(t, ok)
	ok, _ = g.Complete(2, 3, t0.Add(2*time.Minute))
	require.True(t, ok)

	data, err := Serialize(g)
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, g, restored)
	assert.Equal(t, 2, restored.UnlockedCount)
	assert.Equal(t, quest, restored.Cells[2][4].Quest)
	assert.Equal(t, StatusCompleted, restored.Cells[2][3].Status)
}

func TestSerializedDocumentShape(t *testing.T) {
	g := NewGrid("u1", t0)

	data, err := Serialize(g)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "u1", doc["uid"])
	assert.Equal(t, float64(TotalCells), doc["total_cells"])
	assert.Len(t, doc["grid"], GridSize)
	assert.Len(t, doc["core_values"], 9)
}

func TestDeserializeRejectsCorruption(t *testing.T) {
	g := NewGrid("u1", t0)
	data, err := Serialize(g)
	require.NoError(t, err)

	// A mutated core cell in persisted state is fatal for the aggregate.
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	grid := doc["grid"].([]any)
	row := grid[4].([]any)
	cell := row[4].(map[string]any)
	cell["status"] = string(StatusLocked)
	tampered, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = Deserialize(tampered)
	require.Error(t, err)

	// Wrong shape is rejected before cell checks.
	doc["total_cells"] = 64
	tampered, err = json.Marshal(doc)
	require.NoError(t, err)
	_, err = Deserialize(tampered)
	require.Error(t, err)

	_, err = Deserialize([]byte("{not json"))
	require.Error(t, err)
}

func TestDeserializeRejectsWrongGridShape(t *testing.T) {
	g := NewGrid("u1", t0)
	data, err := Serialize(g)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	rows := doc["grid"].([]any)

	// A dropped row would zero-fill into a fixed array and could still
	// pass the cell checks; the shape itself has to be fatal.
	doc["grid"] = rows[:8]
	tampered, err := json.Marshal(doc)
	require.NoError(t, err)
	_, err = Deserialize(tampered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")

	// Same for a short row.
	doc["grid"] = rows
	rows[0] = rows[0].([]any)[:8]
	tampered, err = json.Marshal(doc)
	require.NoError(t, err)
	_, err = Deserialize(tampered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cells")
}
