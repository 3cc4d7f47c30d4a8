package stats

import (
	"database/sql"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Coalesce - take primary[i] when present, otherwise fallback[i]
func Coalesce(primary, fallback []sql.NullInt64) []sql.NullInt64 {
	result := make([]sql.NullInt64, len(primary))
	for i, v := range primary {
		if !v.Valid && i < len(fallback) {
			v = fallback[i]
		}
		result[i] = v
	}
	return result
}

// Diff - first difference, result[i] = v[i] - v[i-1]. The first entry and any
// entry next to a null are null.
func Diff(values []sql.NullInt64) []sql.NullInt64 {
	result := make([]sql.NullInt64, len(values))
	for i := 1; i < len(values); i++ {
		if values[i].Valid && values[i-1].Valid {
			result[i] = sql.NullInt64{Int64: values[i].Int64 - values[i-1].Int64, Valid: true}
		}
	}
	return result
}

// Float64s - null becomes NaN
func Float64s(values []sql.NullInt64) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		if v.Valid {
			result[i] = float64(v.Int64)
		} else {
			result[i] = math.NaN()
		}
	}
	return result
}

// Scale - divide every value by 10^n
func Scale(values []float64, n int) []float64 {
	result := make([]float64, len(values))
	copy(result, values)
	floats.Scale(1/math.Pow10(n), result)
	return result
}

// RollingMean - trailing moving average over window w. The first w-1 points and
// any window holding a NaN are NaN.
func RollingMean(values []float64, w int) []float64 {
	result := make([]float64, len(values))
	for i := range values {
		if w <= 0 || i < w-1 {
			result[i] = math.NaN()
			continue
		}
		window := values[i-w+1 : i+1]
		if floats.HasNaN(window) {
			result[i] = math.NaN()
			continue
		}
		result[i] = stat.Mean(window, nil)
	}
	return result
}
