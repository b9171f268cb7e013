package domain

import (
	"encoding/json"
	"testing"

	perr "spedicija/internal/platform/errors"
)

func TestPredictInputDecode(t *testing.T) {
	var in PredictInput
	if err := json.Unmarshal([]byte(`{"troskovi":[1,2,3,4,5],"vremenski_faktori":[6,7,8,9,10]}`), &in); err != nil {
		t.Fatal(err)
	}
	if len(in.Costs) != 5 || in.Costs[0] != 1 || in.TimeFactors[4] != 10 {
		t.Fatalf("decoded = %+v", in)
	}
}

func TestPredictInputRejectsNullElements(t *testing.T) {
	cases := map[string]string{
		"troškovi":          `{"troškovi":[null,10,15,1539,171],"vremenski_faktori":[200,450,100,20,50]}`,
		"vremenski_faktori": `{"troškovi":[3420,10,15,1539,171],"vremenski_faktori":[200,450,100,20,null]}`,
	}
	for field, b := range cases {
		var in PredictInput
		err := json.Unmarshal([]byte(b), &in)
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("%s: err = %v", field, err)
		}
		if e, _ := perr.As(err); e.Field() != field {
			t.Fatalf("field = %q want %q", e.Field(), field)
		}
	}
}

func TestPredictInputNullArrayLeavesFieldEmpty(t *testing.T) {
	var in PredictInput
	if err := json.Unmarshal([]byte(`{"troškovi":null,"vremenski_faktori":[1,2,3,4,5]}`), &in); err != nil {
		t.Fatal(err)
	}
	if in.Costs != nil {
		t.Fatalf("costs = %v", in.Costs)
	}
}
