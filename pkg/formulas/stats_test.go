package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, -1500.0, Mean([]float64{6500, -9500}), 1e-9)
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{name: "empty", data: nil, expected: 0},
		{name: "single value", data: []float64{42}, expected: 0},
		{name: "constant", data: []float64{3, 3, 3}, expected: 0},
		{name: "sample deviation", data: []float64{2, 4, 4, 4, 5, 5, 7, 9}, expected: 2.138089935},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StdDev(tt.data), 1e-6)
		})
	}
}

func TestExtremes(t *testing.T) {
	maxIdx, minIdx := Extremes(nil)
	assert.Equal(t, -1, maxIdx)
	assert.Equal(t, -1, minIdx)

	maxIdx, minIdx = Extremes([]float64{5, -2, 9, 9, -2})
	assert.Equal(t, 2, maxIdx)
	assert.Equal(t, 1, minIdx)
}

func TestCountSigns(t *testing.T) {
	pos, neg := CountSigns([]float64{1, 0, -3, 2, -0.5})
	assert.Equal(t, 2, pos)
	assert.Equal(t, 2, neg)
}
