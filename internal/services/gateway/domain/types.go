// Package domain defines the prediction request, result and orchestrator port
package domain

import (
	"bytes"
	"context"
	"encoding/json"

	perr "spedicija/internal/platform/errors"
)

// PredictInput is the /predict body. "troskovi" is accepted for "troškovi"
type PredictInput struct {
	Costs       []float64 `json:"troškovi"          validate:"len=5"  example:"3420,10,15,1539,171"`
	TimeFactors []float64 `json:"vremenski_faktori" validate:"len=5"  example:"200,450,100,20,50"`
}

// UnmarshalJSON decodes either cost key and rejects unknown fields
func (p *PredictInput) UnmarshalJSON(b []byte) error {
	var raw struct {
		Costs    *[]*float64 `json:"troškovi"`
		CostsAlt *[]*float64 `json:"troskovi"`
		Times    *[]*float64 `json:"vremenski_faktori"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.Costs != nil && raw.CostsAlt != nil {
		return perr.WithField(perr.JSONErrf("use either troškovi or troskovi, not both"), "troškovi")
	}
	costs := raw.Costs
	if costs == nil {
		costs = raw.CostsAlt
	}
	c, err := numbers(costs, "troškovi")
	if err != nil {
		return err
	}
	t, err := numbers(raw.Times, "vremenski_faktori")
	if err != nil {
		return err
	}
	*p = PredictInput{Costs: c, TimeFactors: t}
	return nil
}

// numbers unwraps a decoded array; a JSON null element is not a number
func numbers(xs *[]*float64, field string) ([]float64, error) {
	if xs == nil {
		return nil, nil
	}
	out := make([]float64, len(*xs))
	for i, x := range *xs {
		if x == nil {
			return nil, perr.WithField(perr.Validationf("%s[%d] must be a number, got null", field, i), field)
		}
		out[i] = *x
	}
	return out, nil
}

// PredictOutput is the /predict result
type PredictOutput struct {
	TotalCost  float64 `json:"ukupni_trošak"   example:"5312.4"`
	TravelTime float64 `json:"vreme_putovanja" example:"17.9"`
}

// Caller carries what the transport knows about who is asking
type Caller struct {
	APIKey     string
	ClientAddr string
	RequestID  string
}

// ServicePort is the inference orchestrator
type ServicePort interface {
	Predict(ctx context.Context, in PredictInput, c Caller) (PredictOutput, error)
}
