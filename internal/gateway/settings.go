package gateway

import (
	"strings"
	"time"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
)

const DefaultProviderTimeout = 30 * time.Second

// Settings is the fallback policy resolved once at startup.
type Settings struct {
	Order           []llm.ProviderName
	Providers       map[llm.ProviderName]config.ProviderConfig
	ProviderTimeout time.Duration
	CacheTTL        time.Duration
}

// NewSettings resolves the order and per-provider configuration. It never
// fails: bad input degrades to defaults or to providers that fail at call time.
func NewSettings(cfg *config.Config) *Settings {
	s := &Settings{
		Order:           ParseOrder(cfg.Gateway.ProviderOrder),
		Providers:       make(map[llm.ProviderName]config.ProviderConfig, len(cfg.Providers)),
		ProviderTimeout: cfg.Gateway.ProviderTimeout,
		CacheTTL:        cfg.Redis.TTL,
	}
	if s.ProviderTimeout <= 0 {
		s.ProviderTimeout = DefaultProviderTimeout
	}

	for name, p := range cfg.Providers {
		p.Name = name
		if llm.ProviderName(name) == llm.OpenRouter {
			p.Config = withDefaults(p.Config, map[string]string{
				"app_url":   cfg.Gateway.AppURL,
				"app_title": cfg.Gateway.AppTitle,
			})
		}
		s.Providers[llm.ProviderName(name)] = p
	}

	return s
}

// ParseOrder splits a comma separated provider list. Tokens are trimmed and
// empty ones dropped; unknown names are kept. Blank input yields DefaultOrder.
func ParseOrder(raw string) []llm.ProviderName {
	var order []llm.ProviderName
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		order = append(order, llm.ProviderName(token))
	}
	if len(order) == 0 {
		return llm.DefaultOrder()
	}
	return order
}

// Position returns the index of name in the fallback order, or -1.
func (s *Settings) Position(name llm.ProviderName) int {
	for i, p := range s.Order {
		if p == name {
			return i
		}
	}
	return -1
}

func withDefaults(m map[string]string, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(m)+len(defaults))
	for k, v := range defaults {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}
