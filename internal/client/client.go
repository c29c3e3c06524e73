// Package client calls a running summary gateway. The Generate* helpers
// never fail: any error is logged and replaced by FallbackMessage so a
// session report can always be produced.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nulzo/summary-gateway/internal/httpclient"
	"github.com/nulzo/summary-gateway/internal/store/model"
	"github.com/nulzo/summary-gateway/pkg/api"
	"go.uber.org/zap"
)

// FallbackMessage is shown to operators when no summary could be produced.
const FallbackMessage = "No se pudo generar el resumen con IA debido a un error. Por favor, revisa el registro de la sesión manualmente."

const defaultTimeout = 2 * time.Minute

type Client struct {
	baseURL string
	appName string
	http    httpclient.HTTPClient
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c httpclient.HTTPClient) Option {
	return func(cl *Client) { cl.http = c }
}

// WithAppName sets X-App-Name, recorded with every attempt on the gateway.
func WithAppName(name string) Option {
	return func(cl *Client) { cl.appName = name }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GatewayError is a non-2xx answer from the gateway.
type GatewayError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("AI service error %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (c *Client) Summarize(ctx context.Context, req api.SummaryRequest) (*api.SummaryResponse, error) {
	var resp api.SummaryResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Report(ctx context.Context, report api.SessionReport) (*api.SummaryResponse, error) {
	var resp api.SummaryResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/report", report, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Recommendations(ctx context.Context, req api.RecommendationRequest) (*api.SummaryResponse, error) {
	var resp api.SummaryResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/recommendations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Providers(ctx context.Context) (*api.ProvidersResponse, error) {
	var resp api.ProvidersResponse
	if err := c.do(ctx, http.MethodGet, "/api/ai/providers", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Stats(ctx context.Context, days int) ([]model.DailyStats, error) {
	var resp struct {
		Data []model.DailyStats `json:"data"`
	}
	path := "/api/ai/stats?days=" + url.QueryEscape(strconv.Itoa(days))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GenerateSessionSummary returns the summary text, or FallbackMessage.
func (c *Client) GenerateSessionSummary(ctx context.Context, sessionData string) string {
	resp, err := c.Summarize(ctx, api.SummaryRequest{SessionData: sessionData})
	return c.textOrFallback(resp, err)
}

// GenerateSessionReport summarises a structured session report, or returns FallbackMessage.
func (c *Client) GenerateSessionReport(ctx context.Context, report api.SessionReport) string {
	resp, err := c.Report(ctx, report)
	return c.textOrFallback(resp, err)
}

// GenerateMaintenanceRecommendations returns recommendations, or FallbackMessage.
func (c *Client) GenerateMaintenanceRecommendations(ctx context.Context, equipment []string, issue string) string {
	resp, err := c.Recommendations(ctx, api.RecommendationRequest{Equipment: equipment, Issue: issue})
	return c.textOrFallback(resp, err)
}

func (c *Client) textOrFallback(resp *api.SummaryResponse, err error) string {
	if err == nil && resp != nil && resp.Text != "" {
		return resp.Text
	}
	if err == nil {
		err = errors.New("gateway returned no text")
	}
	c.logger.Error("Error calling AI service", zap.Error(err))
	return FallbackMessage
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	headers := map[string]string{"Accept": "application/json"}
	if c.appName != "" {
		headers["X-App-Name"] = c.appName
	}

	raw, err := httpclient.SendRequest(ctx, c.http, method, c.baseURL+path, headers, body)
	if err != nil {
		var upstreamErr *httpclient.UpstreamError
		if errors.As(err, &upstreamErr) {
			return gatewayError(upstreamErr)
		}
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// gatewayError reads both the legacy {error, detail} envelope and problem documents.
func gatewayError(upstreamErr *httpclient.UpstreamError) *GatewayError {
	ge := &GatewayError{StatusCode: upstreamErr.StatusCode}

	var body struct {
		Error  string `json:"error"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(upstreamErr.Body, &body) == nil {
		ge.Message = body.Error
		if ge.Message == "" {
			ge.Message = body.Title
		}
		ge.Detail = body.Detail
	}
	return ge
}
