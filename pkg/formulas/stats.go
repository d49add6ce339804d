// Package formulas holds the numeric helpers used by the report statistics.
package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values.
// Fewer than two values have no spread and yield 0.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Extremes returns the indexes of the largest and smallest values.
// Ties resolve to the first occurrence; an empty slice returns (-1, -1).
func Extremes(data []float64) (maxIdx, minIdx int) {
	if len(data) == 0 {
		return -1, -1
	}
	for i, v := range data {
		if v > data[maxIdx] {
			maxIdx = i
		}
		if v < data[minIdx] {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}

// CountSigns counts strictly positive and strictly negative values.
func CountSigns(data []float64) (positive, negative int) {
	for _, v := range data {
		switch {
		case v > 0:
			positive++
		case v < 0:
			negative++
		}
	}
	return positive, negative
}
