//go:build integration_pg

package repo

import (
	"context"
	"encoding/json"
	"testing"

	"spedicija/internal/platform/store/pgtest"
	"spedicija/internal/services/audit/domain"

	"github.com/google/uuid"
)

func TestAuditInsertAndList(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()
	r := NewPG().Bind(db)

	for i, company := range []string{"Alfa", "Beta", "Alfa"} {
		e, err := r.Insert(ctx, domain.Entry{
			ID:         uuid.Must(uuid.NewV7()),
			APIKey:     "sp_" + company,
			Company:    company,
			Input:      json.RawMessage(`{"troškovi":[1,2,3,4,5],"vremenski_faktori":[1,2,3,4,5]}`),
			Output:     json.RawMessage(`{"ukupni_trošak":1,"vreme_putovanja":2}`),
			ClientAddr: "192.0.2.1",
			RequestID:  "req",
		})
		if err != nil || e.CreatedAt.IsZero() {
			t.Fatalf("Insert %d = %+v, %v", i, e, err)
		}
	}

	alfa, err := r.List(ctx, domain.ListFilter{Company: "Alfa", Limit: 10})
	if err != nil || len(alfa) != 2 {
		t.Fatalf("List Alfa = %v, %v", alfa, err)
	}
	var in map[string][]float64
	if err := json.Unmarshal(alfa[0].Input, &in); err != nil || len(in["troškovi"]) != 5 {
		t.Fatalf("input round trip = %s, %v", alfa[0].Input, err)
	}

	one, err := r.List(ctx, domain.ListFilter{Limit: 1})
	if err != nil || len(one) != 1 {
		t.Fatalf("List limit = %v, %v", one, err)
	}
}
