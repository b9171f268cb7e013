// Package service runs model predictions through a bounded worker pool with a per call timeout
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"spedicija/internal/core/features"
	"spedicija/internal/core/model"
	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	"spedicija/internal/platform/metrics"
	"spedicija/internal/services/inference/domain"
)

// Config for the engine
type Config struct {
	// Workers is the number of concurrent predictions, default GOMAXPROCS
	Workers int
	// Timeout bounds waiting for a slot plus the prediction itself, 0 disables
	Timeout time.Duration
}

// Engine implements domain.EnginePort
type Engine struct {
	model   domain.Predictor
	cfg     Config
	slots   chan struct{}
	metrics *metrics.Metrics
}

var _ domain.EnginePort = (*Engine)(nil)

// New constructs an engine around a loaded model
func New(m domain.Predictor, cfg Config, met *metrics.Metrics) *Engine {
	if m == nil {
		panic("inference.Engine requires a loaded model")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{model: m, cfg: cfg, slots: make(chan struct{}, cfg.Workers), metrics: met}
}

// Info reports the loaded model
func (e *Engine) Info() model.Info { return e.model.Info() }

// Infer evaluates v. Faults, panics and timeouts are model errors and are not retried
func (e *Engine) Infer(ctx context.Context, v features.Vector) (domain.Result, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		return domain.Result{}, perr.Model(ctx.Err(), "inference queue wait")
	}

	type outcome struct {
		res domain.Result
		err error
	}
	done := make(chan outcome, 1)
	e.metrics.InferenceStarted()
	go func() {
		// the slot is held until the model returns, even if the caller gave up
		defer func() {
			<-e.slots
			e.metrics.InferenceDone()
		}()
		defer func() {
			if r := recover(); r != nil {
				logger.C(ctx).Error().Interface("panic", r).Msg("model panicked")
				done <- outcome{err: perr.Model(fmt.Errorf("panic: %v", r), "inference failed")}
			}
		}()
		c, t, err := e.model.Predict(v)
		if err != nil {
			done <- outcome{err: modelErr(err)}
			return
		}
		done <- outcome{res: domain.Result{TotalCost: c, TravelTime: t}}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return domain.Result{}, perr.Model(ctx.Err(), "inference timed out")
	}
}

func modelErr(err error) error {
	if perr.IsCode(err, perr.ErrorCodeModel) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return perr.Model(err, "inference timed out")
	}
	return perr.Model(err, "inference failed")
}
