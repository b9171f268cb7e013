// Package http provides the gateway endpoints
package http

import (
	stdhttp "net/http"

	"spedicija/internal/modkit/httpkit"
	pnet "spedicija/internal/platform/net"
	"spedicija/internal/services/gateway/domain"
)

// StatusMessage is the /status greeting
const StatusMessage = "Spedicija API je aktivan!"

// Register mounts /status and /predict
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/status", h.status)
	httpkit.PostJSON(r, "/predict", h.predict)
}

type handlers struct{ svc domain.ServicePort }

// MessageResponse is a bare {"message"} body
type MessageResponse struct {
	Message string `json:"message" example:"Spedicija API je aktivan!"`
}

// swagger:route GET /status Gateway status
// @Summary Liveness message
// @Tags Gateway
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /status [get]
func (h *handlers) status(_ *stdhttp.Request) (any, error) {
	return httpkit.Bare(MessageResponse{Message: StatusMessage}), nil
}

// swagger:route POST /predict Gateway predict
// @Summary Predict total cost and travel time
// @Tags Gateway
// @Accept json
// @Produce json
// @Param x-api-key header string true "API key"
// @Param payload body domain.PredictInput true "Factors"
// @Success 200 {object} domain.PredictOutput
// @Failure 400 {object} http.Envelope
// @Failure 401 {object} http.Envelope
// @Failure 500 {object} http.Envelope
// @Failure 503 {object} http.Envelope
// @Router /predict [post]
func (h *handlers) predict(r *stdhttp.Request, in domain.PredictInput) (any, error) {
	out, err := h.svc.Predict(r.Context(), in, domain.Caller{
		APIKey:     pnet.APIKey(r),
		ClientAddr: pnet.ClientIP(r),
		RequestID:  pnet.RequestID(r.Context()),
	})
	if err != nil {
		return nil, err
	}
	return httpkit.Bare(out), nil
}
