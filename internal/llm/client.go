package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/httpclient"
	"github.com/nulzo/summary-gateway/internal/prompt"
	"github.com/tidwall/gjson"
)

// Client is the single adapter implementation. Provider specifics live in
// the Descriptor it was built from.
type Client struct {
	desc   Descriptor
	config config.ProviderConfig
	client httpclient.HTTPClient
}

var _ Adapter = (*Client)(nil)

func NewClient(desc Descriptor, cfg config.ProviderConfig, client httpclient.HTTPClient) *Client {
	if cfg.Model == "" {
		cfg.Model = desc.DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = desc.DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		desc:   desc,
		config: cfg,
		client: client,
	}
}

func (c *Client) Name() ProviderName { return c.desc.Name }
func (c *Client) Model() string      { return c.config.Model }
func (c *Client) Configured() bool   { return c.config.APIKey != "" }

// Complete sends the summary prompt and returns the untouched response body.
func (c *Client) Complete(ctx context.Context, sessionData string) (RawResponse, error) {
	if !c.Configured() {
		return nil, &MissingCredentialError{Provider: c.desc.Name}
	}

	text, err := prompt.Summary(sessionData)
	if err != nil {
		return nil, fmt.Errorf("%s: building prompt: %w", c.desc.Label, err)
	}

	url := c.desc.Endpoint(strings.TrimRight(c.config.BaseURL, "/"), c.config.Model, c.config.APIKey)

	var headers map[string]string
	if c.desc.Headers != nil {
		headers = c.desc.Headers(c.config)
	}

	body, err := httpclient.SendRequest(ctx, c.client, http.MethodPost, url, headers, c.desc.Body(c.config.Model, text))
	if err != nil {
		var upstreamErr *httpclient.UpstreamError
		if errors.As(err, &upstreamErr) {
			return nil, &StatusError{
				Provider:   c.desc.Name,
				Label:      c.desc.Label,
				StatusCode: upstreamErr.StatusCode,
				Body:       upstreamErr.Body,
			}
		}
		return nil, fmt.Errorf("%s: %w", c.desc.Label, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w", c.desc.Label, ErrInvalidResponse)
	}

	return RawResponse(body), nil
}
