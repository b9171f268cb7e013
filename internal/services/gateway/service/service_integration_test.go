//go:build integration_pg

package service

import (
	"context"
	"testing"

	"spedicija/internal/core/features"
	"spedicija/internal/core/model"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/store/pgtest"
	auditdom "spedicija/internal/services/audit/domain"
	auditrepo "spedicija/internal/services/audit/repo"
	auditsvc "spedicija/internal/services/audit/service"
	"spedicija/internal/services/gateway/domain"
	infsvc "spedicija/internal/services/inference/service"
	keysrepo "spedicija/internal/services/keys/repo"
	keyssvc "spedicija/internal/services/keys/service"
)

func TestPredictAgainstPostgres(t *testing.T) {
	db := pgtest.Open(t)
	ctx := context.Background()

	m, err := model.Load("../../../core/model/testdata/model.yaml")
	if err != nil {
		t.Fatal(err)
	}
	keys := keyssvc.New(db, keysrepo.NewPG(), keyssvc.Config{})
	audit := auditsvc.New(db, auditrepo.NewPG(), auditsvc.Config{}, nil)
	svc := New(Deps{
		Pool:   db,
		Auth:   keys,
		Engine: infsvc.New(m, infsvc.Config{Workers: 2}, nil),
		Audit:  audit,
	})

	k, err := keys.Issue(ctx, "Alfa")
	if err != nil {
		t.Fatal(err)
	}

	out, err := svc.Predict(ctx, example(), domain.Caller{APIKey: k.Key, ClientAddr: "192.0.2.1", RequestID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	entries, err := audit.List(ctx, auditdom.ListFilter{Company: "Alfa"})
	if err != nil || len(entries) != 1 {
		t.Fatalf("audit = %v, %v", entries, err)
	}
	if entries[0].APIKey != k.Key || entries[0].RequestID != "r1" {
		t.Fatalf("entry = %+v", entries[0])
	}
	in := example()
	v, _ := features.Build(in.Costs, in.TimeFactors)
	if c, tt, _ := m.Predict(v); out.TotalCost != c || out.TravelTime != tt {
		t.Fatalf("out = %+v, want %v %v", out, c, tt)
	}

	if err := keys.Revoke(ctx, k.Key); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Predict(ctx, example(), domain.Caller{APIKey: k.Key})
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("revoked key err = %v", err)
	}
	if entries, _ := audit.List(ctx, auditdom.ListFilter{}); len(entries) != 1 {
		t.Fatalf("rejected call was audited: %d entries", len(entries))
	}
}
