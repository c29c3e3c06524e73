package v1

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/nulzo/summary-gateway/internal/gateway"
	"github.com/nulzo/summary-gateway/internal/prompt"
	"github.com/nulzo/summary-gateway/internal/server/validator"
	"github.com/nulzo/summary-gateway/pkg/api"
	"github.com/tidwall/gjson"
)

const invalidRequestBody = "Invalid request body"

type SummaryHandler struct {
	service   gateway.Service
	validator *validator.Validator
}

func NewSummaryHandler(service gateway.Service, v *validator.Validator) *SummaryHandler {
	return &SummaryHandler{
		service:   service,
		validator: v,
	}
}

// Summarize is the legacy summary endpoint. Its response shapes are fixed:
// {provider, text}, {error} on a bad body, {error, detail} when every provider failed.
//
// POST /api/ai
func (h *SummaryHandler) Summarize(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.FailureResponse{Error: invalidRequestBody})
		return
	}

	// only a body with no bytes at all stands for {}; whitespace is not JSON
	var req api.SummaryRequest
	if len(raw) > 0 {
		if len(bytes.TrimSpace(raw)) == 0 || !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
			c.JSON(http.StatusBadRequest, api.FailureResponse{Error: invalidRequestBody})
			return
		}
		if err := binding.JSON.BindBody(raw, &req); err != nil {
			c.JSON(http.StatusBadRequest, api.FailureResponse{Error: invalidRequestBody})
			return
		}
	}

	resp, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		var failed *gateway.AllProvidersFailedError
		if errors.As(err, &failed) {
			c.JSON(http.StatusBadGateway, api.FailureResponse{Error: failed.Error(), Detail: failed.Detail()})
			return
		}
		_ = c.Error(api.InternalError("Failed to generate summary", err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Report summarises a structured session report.
//
// POST /api/ai/report
func (h *SummaryHandler) Report(c *gin.Context) {
	var req api.SessionReport
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(h.validator.ParseError(err)))
		return
	}

	data, err := prompt.Report(req)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to format session report", err))
		return
	}

	h.summarize(c, api.SummaryRequest{SessionData: data, Provider: req.Provider})
}

// Recommendations asks for maintenance recommendations for a set of equipment.
//
// POST /api/ai/recommendations
func (h *SummaryHandler) Recommendations(c *gin.Context) {
	var req api.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(h.validator.ParseError(err)))
		return
	}

	data, err := prompt.Recommendations(req)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to format recommendation request", err))
		return
	}

	h.summarize(c, api.SummaryRequest{SessionData: data, Provider: req.Provider})
}

// summarize reports failures as problems, unlike the legacy endpoint.
func (h *SummaryHandler) summarize(c *gin.Context, req api.SummaryRequest) {
	resp, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		var failed *gateway.AllProvidersFailedError
		if errors.As(err, &failed) {
			_ = c.Error(api.ProviderError(failed.Detail(), err))
			return
		}
		_ = c.Error(api.InternalError("Failed to generate summary", err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Providers lists the fallback order and every known provider.
//
// GET /api/ai/providers
func (h *SummaryHandler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Providers())
}
