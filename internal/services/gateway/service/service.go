// Package service orchestrates one prediction: validate, authenticate, infer, record, respond
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"spedicija/internal/core/features"
	"spedicija/internal/modkit/repokit"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	pstrings "spedicija/internal/platform/strings"
	auditdom "spedicija/internal/services/audit/domain"
	"spedicija/internal/services/gateway/domain"
	infdom "spedicija/internal/services/inference/domain"
	keysdom "spedicija/internal/services/keys/domain"
)

// State is a step of the prediction lifecycle
type State string

// Lifecycle states; a request only moves forward
const (
	StateReceived      State = "received"
	StateValidated     State = "validated"
	StateAuthenticated State = "authenticated"
	StateInferred      State = "inferred"
	StateLogged        State = "logged"
	StateResponded     State = "responded"
)

// Deps are the collaborators of the orchestrator
type Deps struct {
	Pool    repokit.Pool
	Auth    keysdom.AuthPort
	Engine  infdom.EnginePort
	Audit   auditdom.RecorderPort
	Metrics *metrics.Metrics
}

// Svc implements domain.ServicePort
type Svc struct{ d Deps }

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the orchestrator
func New(d Deps) *Svc {
	if d.Pool == nil || d.Auth == nil || d.Engine == nil || d.Audit == nil {
		panic("gateway.Service requires pool, auth, engine and audit")
	}
	return &Svc{d: d}
}

// Predict serves one prediction
// the result is returned only after its audit entry is committed
func (s *Svc) Predict(ctx context.Context, in domain.PredictInput, c domain.Caller) (out domain.PredictOutput, err error) {
	start := time.Now()
	state := StateReceived
	defer func() {
		outcome := metrics.OutcomeOf(err)
		s.d.Metrics.RecordPrediction(outcome, time.Since(start))
		ev := logger.C(ctx).Debug()
		if err != nil && outcome != metrics.OutcomeInvalid && outcome != metrics.OutcomeUnauthorized {
			ev = logger.C(ctx).Warn().Err(err)
		}
		ev.Str("api_key", pstrings.Mask(c.APIKey, 5)).Str("state", string(state)).Str("outcome", outcome).Dur("took", time.Since(start)).Msg("predict")
	}()

	v, err := features.Build(in.Costs, in.TimeFactors)
	if err != nil {
		return domain.PredictOutput{}, err
	}
	state = StateValidated

	if strings.TrimSpace(c.APIKey) == "" {
		return domain.PredictOutput{}, perr.Unauthorizedf(keysdom.MsgInvalidKey)
	}

	err = s.d.Pool.Acquire(ctx, func(conn repokit.TxRunner) error {
		key, err := s.d.Auth.Authenticate(ctx, conn, c.APIKey)
		if err != nil {
			return err
		}
		state = StateAuthenticated
		ctx := logger.WithCompany(ctx, key.Company)

		res, err := s.d.Engine.Infer(ctx, v)
		if err != nil {
			return err
		}
		state = StateInferred
		result := domain.PredictOutput{TotalCost: res.TotalCost, TravelTime: res.TravelTime}

		entry, err := newEntry(v, result, key, c)
		if err != nil {
			return err
		}
		if _, err := s.d.Audit.Record(ctx, conn, entry); err != nil {
			return err
		}
		state = StateLogged
		out = result
		return nil
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.Persistence(err, "acquire connection")
		}
		return domain.PredictOutput{}, err
	}
	state = StateResponded
	return out, nil
}

// newEntry serializes the canonical request and the result with their wire keys
func newEntry(v features.Vector, out domain.PredictOutput, key keysdom.Key, c domain.Caller) (auditdom.Entry, error) {
	input, err := json.Marshal(domain.PredictInput{Costs: v.Costs(), TimeFactors: v.Times()})
	if err != nil {
		return auditdom.Entry{}, perr.Model(err, "encode request")
	}
	output, err := json.Marshal(out)
	if err != nil {
		return auditdom.Entry{}, perr.Model(err, "encode result")
	}
	return auditdom.Entry{
		APIKey:     key.Key,
		Company:    key.Company,
		Input:      input,
		Output:     output,
		ClientAddr: c.ClientAddr,
		RequestID:  c.RequestID,
	}, nil
}
