package model

import (
	"math"
	"strings"
	"sync"
	"testing"

	"spedicija/internal/core/features"
	perr "spedicija/internal/platform/errors"
	kit "spedicija/internal/platform/testkit"
)

// sumModel outputs (sum of costs, sum of times) through one linear layer
func sumModel(t *testing.T) *Model {
	t.Helper()
	w := make([][]float64, 2)
	w[0] = []float64{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	w[1] = []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	m, err := New(Spec{Name: "sum", Version: "t", Layers: []Layer{{Weights: w, Bias: []float64{0, 0}}}})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPredictLinear(t *testing.T) {
	m := sumModel(t)
	cost, tm, err := m.Predict(features.Vector{3420, 10, 15, 1539, 171, 200, 450, 100, 20, 50})
	if err != nil {
		t.Fatal(err)
	}
	if cost != 5155 || tm != 820 {
		t.Fatalf("Predict = %v, %v", cost, tm)
	}
	if info := m.Info(); info.Inputs != 10 || info.Outputs != 2 || info.Params != 22 || info.Layers != 1 {
		t.Fatalf("Info = %+v", info)
	}
}

func TestActivations(t *testing.T) {
	cases := []struct {
		a    Activation
		in   float64
		want float64
	}{
		{Linear, -2, -2},
		{ReLU, -2, 0},
		{ReLU, 3, 3},
		{Sigmoid, 0, 0.5},
		{Tanh, 0, 0},
	}
	for _, c := range cases {
		if got := c.a.apply(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("%s(%v) = %v want %v", c.a, c.in, got, c.want)
		}
	}
}

func TestScalers(t *testing.T) {
	w := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	}
	m, err := New(Spec{
		Input:  &Scaler{Mean: []float64{10, 0, 0, 0, 0, 4, 0, 0, 0, 0}, Scale: []float64{2, 1, 1, 1, 1, 2, 1, 1, 1, 1}},
		Target: &Scaler{Mean: []float64{100, 1}, Scale: []float64{10, 1}},
		Layers: []Layer{{Weights: w, Bias: []float64{0, 0}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// (14-10)/2 = 2 -> 2*10+100; (8-4)/2 = 2 -> 2*1+1
	cost, tm, err := m.Predict(features.Vector{14, 0, 0, 0, 0, 8, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if cost != 120 || tm != 3 {
		t.Fatalf("Predict = %v, %v", cost, tm)
	}
}

func TestNewRejectsBadShapes(t *testing.T) {
	row := func(n int) []float64 { return make([]float64, n) }
	cases := []struct {
		name string
		spec Spec
		msg  string
	}{
		{"no layers", Spec{}, "no layers"},
		{"inputs", Spec{Inputs: 9, Layers: []Layer{{}}}, "inputs = 9"},
		{"row width", Spec{Layers: []Layer{{Weights: [][]float64{row(9), row(10)}, Bias: row(2)}}}, "width 9"},
		{"bias", Spec{Layers: []Layer{{Weights: [][]float64{row(10), row(10)}, Bias: row(1)}}}, "biases"},
		{"out width", Spec{Layers: []Layer{{Weights: [][]float64{row(10)}, Bias: row(1)}}}, "last layer width 1"},
		{"activation", Spec{Layers: []Layer{{Weights: [][]float64{row(10), row(10)}, Bias: row(2), Activation: "gelu"}}}, "unknown activation"},
		{"nan", Spec{Layers: []Layer{{Weights: [][]float64{row(10), append(row(9), math.NaN())}, Bias: row(2)}}}, "non-finite"},
		{"zero scale", Spec{
			Input:  &Scaler{Mean: row(10), Scale: row(10)},
			Layers: []Layer{{Weights: [][]float64{row(10), row(10)}, Bias: row(2)}},
		}, "scale[0] is zero"},
	}
	for _, c := range cases {
		_, err := New(c.spec)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		kit.MustContain(t, err.Error(), c.msg)
	}
}

func TestNewCopiesWeights(t *testing.T) {
	w := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	}
	m, err := New(Spec{Layers: []Layer{{Weights: w, Bias: []float64{0, 0}}}})
	if err != nil {
		t.Fatal(err)
	}
	w[0][0] = 1000
	cost, _, _ := m.Predict(features.Vector{1})
	if cost != 1 {
		t.Fatalf("model shares caller memory: %v", cost)
	}
}

func TestPredictNonFiniteIsModelError(t *testing.T) {
	w := [][]float64{
		{1e308, 1e308, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	}
	m, err := New(Spec{Layers: []Layer{{Weights: w, Bias: []float64{0, 0}}}})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = m.Predict(features.Vector{10, 10})
	if !perr.IsCode(err, perr.ErrorCodeModel) {
		t.Fatalf("err = %v", err)
	}

	var nilModel *Model
	if _, _, err := nilModel.Predict(features.Vector{}); !perr.IsCode(err, perr.ErrorCodeModel) {
		t.Fatalf("nil model err = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	m, err := Load("testdata/model.yaml")
	if err != nil {
		t.Fatal(err)
	}
	info := m.Info()
	if info.Name != "spedicija-mlp" || info.Layers != 2 || info.Params != 54 {
		t.Fatalf("Info = %+v", info)
	}

	v := features.Vector{3420, 10, 15, 1539, 171, 200, 450, 100, 20, 50}
	c1, t1, err := m.Predict(v)
	if err != nil {
		t.Fatal(err)
	}

	// concurrent reads see the same deterministic result
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, tm, err := m.Predict(v)
			if err != nil || c != c1 || tm != t1 {
				t.Errorf("concurrent Predict = %v, %v, %v", c, tm, err)
			}
		}()
	}
	wg.Wait()
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("testdata/missing.yaml"); err == nil {
		t.Fatal("expected read error")
	}
	if _, err := Parse([]byte("layers: [")); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
	// JSON is YAML
	js := `{"layers":[{"weights":[[1,0,0,0,0,0,0,0,0,0],[0,0,0,0,0,1,0,0,0,0]],"bias":[0,0]}]}`
	if _, err := Parse([]byte(js)); err != nil {
		t.Fatalf("json model: %v", err)
	}
}
