// Package http provides the registration endpoint
package http

import (
	stdhttp "net/http"

	"spedicija/internal/modkit/httpkit"
	"spedicija/internal/services/ident/domain"
)

// Register mounts /register
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/register", h.register)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /register Ident register
// @Summary Register a company user
// @Tags Ident
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "Credentials"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} http.Envelope
// @Failure 503 {object} http.Envelope
// @Router /register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	if _, err := h.svc.Register(r.Context(), in); err != nil {
		return nil, err
	}
	return httpkit.Bare(domain.MessageResponse{Message: domain.MsgRegistered}), nil
}
