package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Small numeric helpers shared by the analysis packages, backed by gonum.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// Correlation calculates Pearson correlation coefficient between two series.
// Constant series have no defined correlation and yield 0.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}
	if Variance(x) < 1e-12 || Variance(y) < 1e-12 {
		return 0.0
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0.0
	}
	return r
}

// Ratio returns part/whole, or 0 when whole is zero
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0.0
	}
	return float64(part) / float64(whole)
}

// ArgMin returns the index of the smallest value; the first one wins on ties
func ArgMin(data []float64) int {
	if len(data) == 0 {
		return -1
	}
	return floats.MinIdx(data)
}
