package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOffcuts(t *testing.T) {
	stock := StockKey{Material: "Pine", Height: 45, Width: 45}
	plan := GroupPlan{
		Stock: stock,
		Boards: []Board{
			{ID: "a", Used: 5412, StockLength: 5700},
			{ID: "b", Used: 1804, StockLength: 2400},
			{ID: "c", Used: 904, StockLength: 2400},
			{ID: "d", Used: 7004, StockLength: 6000, Oversize: true},
		},
	}

	offcuts := DetectOffcuts(plan, 300)
	require.Len(t, offcuts, 2)
	assert.Equal(t, "c", offcuts[0].BoardID)
	assert.Equal(t, 2, offcuts[0].BoardIndex)
	assert.Equal(t, 1496, offcuts[0].Length)
	assert.Equal(t, 596, offcuts[1].Length)
	assert.Equal(t, stock, offcuts[1].Stock)
	assert.Len(t, offcuts[0].ID, 8)
}

func TestDetectOffcuts_Disabled(t *testing.T) {
	plan := GroupPlan{Boards: []Board{{Used: 100, StockLength: 2400}}}
	assert.Nil(t, DetectOffcuts(plan, 0))
	assert.Nil(t, DetectOffcuts(plan, -1))
}
