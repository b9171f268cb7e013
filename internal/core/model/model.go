// Package model loads and evaluates the pre-trained cost and travel time regressor
//
// The model file is a YAML (or JSON) description of a dense feed-forward
// network. A loaded Model is immutable and safe for concurrent Predict calls
package model

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"spedicija/internal/core/features"
	perr "spedicija/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Outputs is the number of values the model produces
const Outputs = 2

// Activation names a layer nonlinearity
type Activation string

// Supported activations
const (
	Linear  Activation = "linear"
	ReLU    Activation = "relu"
	Sigmoid Activation = "sigmoid"
	Tanh    Activation = "tanh"
)

// Scaler standardizes values as (x - mean) / scale
type Scaler struct {
	Mean  []float64 `yaml:"mean"  json:"mean"`
	Scale []float64 `yaml:"scale" json:"scale"`
}

// Layer is one dense layer: out = act(W·in + b), W is out×in
type Layer struct {
	Weights    [][]float64 `yaml:"weights"    json:"weights"`
	Bias       []float64   `yaml:"bias"       json:"bias"`
	Activation Activation  `yaml:"activation" json:"activation"`
}

// Spec is the on-disk model document
type Spec struct {
	Name    string  `yaml:"name"    json:"name"`
	Version string  `yaml:"version" json:"version"`
	Inputs  int     `yaml:"inputs"  json:"inputs"`
	Outputs int     `yaml:"outputs" json:"outputs"`
	Input   *Scaler `yaml:"input_scaler,omitempty"  json:"input_scaler,omitempty"`
	Target  *Scaler `yaml:"target_scaler,omitempty" json:"target_scaler,omitempty"`
	Layers  []Layer `yaml:"layers"  json:"layers"`
}

// Info describes a loaded model
type Info struct {
	Name    string `json:"name"    example:"spedicija-mlp"`
	Version string `json:"version" example:"2024.06"`
	Inputs  int    `json:"inputs"  example:"10"`
	Outputs int    `json:"outputs" example:"2"`
	Layers  int    `json:"layers"  example:"3"`
	Params  int    `json:"params"  example:"1234"`
}

// Model is a validated, immutable network
type Model struct {
	spec Spec
	info Info
}

// Load reads and validates a model file
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a model document. JSON is accepted since it is valid YAML
func Parse(b []byte) (*Model, error) {
	var s Spec
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(s)
}

// New validates s and returns a Model that owns a private copy of it
func New(s Spec) (*Model, error) {
	if s.Inputs == 0 {
		s.Inputs = features.Width
	}
	if s.Outputs == 0 {
		s.Outputs = Outputs
	}
	if s.Inputs != features.Width {
		return nil, fmt.Errorf("inputs = %d, want %d", s.Inputs, features.Width)
	}
	if s.Outputs != Outputs {
		return nil, fmt.Errorf("outputs = %d, want %d", s.Outputs, Outputs)
	}
	if len(s.Layers) == 0 {
		return nil, fmt.Errorf("no layers")
	}
	if err := checkScaler(s.Input, s.Inputs, "input_scaler"); err != nil {
		return nil, err
	}
	if err := checkScaler(s.Target, s.Outputs, "target_scaler"); err != nil {
		return nil, err
	}

	width, params := s.Inputs, 0
	layers := make([]Layer, len(s.Layers))
	for i, l := range s.Layers {
		if l.Activation == "" {
			l.Activation = Linear
		}
		switch l.Activation {
		case Linear, ReLU, Sigmoid, Tanh:
		default:
			return nil, fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		if len(l.Weights) == 0 || len(l.Bias) != len(l.Weights) {
			return nil, fmt.Errorf("layer %d: %d weight rows, %d biases", i, len(l.Weights), len(l.Bias))
		}
		w := make([][]float64, len(l.Weights))
		for j, row := range l.Weights {
			if len(row) != width {
				return nil, fmt.Errorf("layer %d row %d: width %d, want %d", i, j, len(row), width)
			}
			if !finite(row...) {
				return nil, fmt.Errorf("layer %d row %d: non-finite weight", i, j)
			}
			w[j] = append([]float64(nil), row...)
		}
		if !finite(l.Bias...) {
			return nil, fmt.Errorf("layer %d: non-finite bias", i)
		}
		layers[i] = Layer{Weights: w, Bias: append([]float64(nil), l.Bias...), Activation: l.Activation}
		params += len(l.Weights)*width + len(l.Bias)
		width = len(l.Weights)
	}
	if width != s.Outputs {
		return nil, fmt.Errorf("last layer width %d, want %d", width, s.Outputs)
	}
	s.Layers = layers
	s.Input = cloneScaler(s.Input)
	s.Target = cloneScaler(s.Target)

	return &Model{
		spec: s,
		info: Info{
			Name:    s.Name,
			Version: s.Version,
			Inputs:  s.Inputs,
			Outputs: s.Outputs,
			Layers:  len(layers),
			Params:  params,
		},
	}, nil
}

// Info returns a summary of the model
func (m *Model) Info() Info { return m.info }

// Predict evaluates the network for one vector and returns (total cost, travel time)
// any shape or numeric fault is a model error
func (m *Model) Predict(v features.Vector) (totalCost, travelTime float64, err error) {
	if m == nil {
		return 0, 0, perr.Model(nil, "model not loaded")
	}
	x := v.Slice()
	if len(x) != m.spec.Inputs {
		return 0, 0, perr.Model(nil, fmt.Sprintf("input width %d, want %d", len(x), m.spec.Inputs))
	}
	if s := m.spec.Input; s != nil {
		for i := range x {
			x[i] = (x[i] - s.Mean[i]) / s.Scale[i]
		}
	}
	for _, l := range m.spec.Layers {
		x = l.forward(x)
	}
	if s := m.spec.Target; s != nil {
		for i := range x {
			x[i] = x[i]*s.Scale[i] + s.Mean[i]
		}
	}
	if len(x) != Outputs || !finite(x...) {
		return 0, 0, perr.Model(nil, "model produced a non-finite result")
	}
	return x[0], x[1], nil
}

func (l Layer) forward(in []float64) []float64 {
	out := make([]float64, len(l.Weights))
	for j, row := range l.Weights {
		sum := l.Bias[j]
		for i, w := range row {
			sum += w * in[i]
		}
		out[j] = l.Activation.apply(sum)
	}
	return out
}

func (a Activation) apply(x float64) float64 {
	switch a {
	case ReLU:
		return math.Max(0, x)
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	default:
		return x
	}
}

func checkScaler(s *Scaler, n int, name string) error {
	if s == nil {
		return nil
	}
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("%s: mean/scale must have %d values", name, n)
	}
	if !finite(s.Mean...) || !finite(s.Scale...) {
		return fmt.Errorf("%s: non-finite value", name)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("%s: scale[%d] is zero", name, i)
		}
	}
	return nil
}

func cloneScaler(s *Scaler) *Scaler {
	if s == nil {
		return nil
	}
	return &Scaler{Mean: append([]float64(nil), s.Mean...), Scale: append([]float64(nil), s.Scale...)}
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
