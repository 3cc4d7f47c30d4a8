package schema

import "time"

// ChartSeries - a labeled curve ready to be drawn
type ChartSeries struct {
	Label    string
	XTitle   string
	YKey     string
	YTitle   string
	Dates    []time.Time
	Values   []float64 // NaN marks an undefined point
	Aspect   float64
	ShowGrid bool
	Hover    bool
}

// Overlay - charts laid out in Cols columns, in order
type Overlay struct {
	Series []ChartSeries
	Cols   int
}
