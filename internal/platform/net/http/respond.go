// Package http provides helpers for writing JSON responses
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "spedicija/internal/platform/errors"
	"spedicija/internal/platform/logger"
	pnet "spedicija/internal/platform/net"
)

// Envelope is the response body for errors and for endpoints that opt into it
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorEnvelope maps a project error into an Envelope and its status
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status, wr := perr.HTTP(err)
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		Field:      wr.Field,
		RequestID:  reqID,
	}
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	reqID := pnet.RequestID(r.Context())
	if reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}
	status, env := ErrorEnvelope(err, reqID)
	if status >= stdhttp.StatusInternalServerError {
		ev := logger.C(r.Context()).Error().Err(err).Uint16("code", uint16(env.Code))
		if e, ok := perr.As(err); ok && e.Op() != "" {
			ev = ev.Str("op", e.Op())
		}
		ev.Msg("request failed")
	}
	JSON(w, status, env)
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	// Bare writes Body as is instead of wrapping it in an Envelope
	Bare bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	if resp.Bare {
		JSON(w, status, resp.Body)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

// OK returns a 200 enveloped response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Bare returns a 200 response whose body is data without an envelope
func Bare(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Bare: true} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
