// Package features builds the fixed order model input from cost and time factors
package features

import (
	"math"
	"strconv"
	"strings"

	perr "spedicija/internal/platform/errors"
)

const (
	// Costs is the number of cost factors
	Costs = 5
	// Times is the number of time factors
	Times = 5
	// Width is the model input width
	Width = Costs + Times
)

// Vector is the model input: cost factors first, then time factors
type Vector [Width]float64

// Build validates both sequences and concatenates them cost-then-time
func Build(costs, times []float64) (Vector, error) {
	var v Vector
	if err := check(costs, Costs, "troškovi"); err != nil {
		return v, err
	}
	if err := check(times, Times, "vremenski_faktori"); err != nil {
		return v, err
	}
	copy(v[:Costs], costs)
	copy(v[Costs:], times)
	return v, nil
}

func check(xs []float64, want int, field string) error {
	if len(xs) != want {
		return perr.WithField(perr.Validationf("%s must have exactly %d values, got %d", field, want, len(xs)), field)
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return perr.WithField(perr.Validationf("%s[%d] is not a finite number", field, i), field)
		}
	}
	return nil
}

// Costs returns the cost half of the vector
func (v Vector) Costs() []float64 { return append([]float64(nil), v[:Costs]...) }

// Times returns the time half of the vector
func (v Vector) Times() []float64 { return append([]float64(nil), v[Costs:]...) }

// Slice returns a copy of the vector as a slice
func (v Vector) Slice() []float64 { return append([]float64(nil), v[:]...) }

// ParseList parses comma separated numbers like "3420,10,15,1539,171"
// blanks around items are ignored; the length is checked by Build
func ParseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, perr.Validationf("empty list")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "item %d: %q is not a number", i, strings.TrimSpace(p))
		}
		out = append(out, f)
	}
	return out, nil
}
