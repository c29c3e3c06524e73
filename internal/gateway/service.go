package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/summary-gateway/internal/analytics"
	"github.com/nulzo/summary-gateway/internal/llm"
	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/cache"
	"github.com/nulzo/summary-gateway/internal/store/model"
	"github.com/nulzo/summary-gateway/pkg/api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/nulzo/summary-gateway/internal/gateway"

// Service defines the business logic of the summary gateway.
type Service interface {
	// Summarize walks the provider order (or only the pinned provider) and
	// returns the first non-empty text. Exhaustion yields *AllProvidersFailedError.
	Summarize(ctx context.Context, req api.SummaryRequest) (*api.SummaryResponse, error)

	// Providers describes the effective order and every known provider.
	Providers() api.ProvidersResponse
}

type service struct {
	logger   *zap.Logger
	settings *Settings
	adapters map[llm.ProviderName]llm.Adapter
	ingestor analytics.Ingestor
	cache    cache.CacheService
	tracer   trace.Tracer
}

// NewService wires the orchestrator. ingestor and cache may be nil.
func NewService(logger *zap.Logger, settings *Settings, adapters map[llm.ProviderName]llm.Adapter, ingestor analytics.Ingestor, cache cache.CacheService) Service {
	if ingestor == nil {
		ingestor = analytics.NewNopIngestor()
	}
	return &service{
		logger:   logger,
		settings: settings,
		adapters: adapters,
		ingestor: ingestor,
		cache:    cache,
		tracer:   otel.Tracer(tracerName),
	}
}

func (s *service) Summarize(ctx context.Context, req api.SummaryRequest) (*api.SummaryResponse, error) {
	order := s.settings.Order
	if req.Provider != "" {
		order = []llm.ProviderName{llm.ProviderName(req.Provider)}
	}

	requestID := requestIDFrom(ctx)
	appName, _ := ctx.Value(store.ContextKeyAppName).(string)
	log := s.logger.With(zap.String("request_id", requestID))

	key := cacheKey(req)
	if resp, ok := s.fromCache(ctx, key); ok {
		log.Debug("Summary served from cache", zap.String("provider", resp.Provider))
		s.ingestor.Log(&model.AttemptLog{
			RequestID: requestID,
			AppName:   appName,
			Provider:  resp.Provider,
			Outcome:   model.OutcomeCached,
		})
		return resp, nil
	}

	attempts := make([]Attempt, 0, len(order))
	var lastErr error

	for position, name := range order {
		start := time.Now()
		text, strategy, err := s.attempt(ctx, name, req.SessionData)
		latency := time.Since(start)

		attempts = append(attempts, Attempt{Provider: name, Err: err, Latency: latency})
		s.record(requestID, appName, name, position, strategy, latency, err)

		if err != nil {
			lastErr = err
			log.Warn("Provider attempt failed",
				zap.String("provider", string(name)),
				zap.Int("position", position),
				zap.Duration("latency", latency),
				zap.Error(err),
			)
			continue
		}

		log.Info("Summary generated",
			zap.String("provider", string(name)),
			zap.String("strategy", strategy),
			zap.Int("attempts", len(attempts)),
			zap.Duration("latency", latency),
		)

		resp := &api.SummaryResponse{Provider: string(name), Text: text}
		s.toCache(ctx, key, resp)
		return resp, nil
	}

	failure := &AllProvidersFailedError{Attempts: attempts, Last: lastErr}
	log.Error("All providers failed",
		zap.Int("attempts", len(attempts)),
		zap.String("detail", failure.Detail()),
	)
	return nil, failure
}

// attempt makes exactly one call to one provider under its own deadline.
func (s *service) attempt(ctx context.Context, name llm.ProviderName, sessionData string) (text, strategy string, err error) {
	ctx, span := s.tracer.Start(ctx, "gateway.attempt",
		trace.WithAttributes(attribute.String("llm.provider", string(name))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("llm.strategy", strategy))
		}
		span.End()
	}()

	adapter, ok := s.adapters[name]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", llm.ErrUnknownProvider, name)
	}
	span.SetAttributes(attribute.String("llm.model", adapter.Model()))

	attemptCtx, cancel := context.WithTimeout(ctx, s.settings.ProviderTimeout)
	defer cancel()

	raw, err := adapter.Complete(attemptCtx, sessionData)
	if err != nil {
		return "", "", err
	}

	text, strategy = llm.NormalizeWith(raw)
	if text == "" {
		return "", "", &llm.EmptyTextError{Provider: name}
	}
	return text, strategy, nil
}

func (s *service) record(requestID, appName string, name llm.ProviderName, position int, strategy string, latency time.Duration, err error) {
	entry := &model.AttemptLog{
		ID:        uuid.NewString(),
		RequestID: requestID,
		AppName:   appName,
		Provider:  string(name),
		Position:  position,
		Outcome:   model.OutcomeSuccess,
		Strategy:  strategy,
		LatencyMS: latency.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
	if adapter, ok := s.adapters[name]; ok {
		entry.Model = adapter.Model()
	}
	if err != nil {
		entry.Outcome = model.OutcomeFailure
		entry.Error = err.Error()

		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			entry.StatusCode = statusErr.StatusCode
		}
	}
	s.ingestor.Log(entry)
}

func (s *service) fromCache(ctx context.Context, key string) (*api.SummaryResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	var resp api.SummaryResponse
	if err := s.cache.Get(ctx, key, &resp); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}
	if resp.Text == "" {
		return nil, false
	}
	return &resp, true
}

func (s *service) toCache(ctx context.Context, key string, resp *api.SummaryResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, resp, s.settings.CacheTTL); err != nil {
		s.logger.Warn("Cache write failed", zap.Error(err))
	}
}

func (s *service) Providers() api.ProvidersResponse {
	order := make([]string, len(s.settings.Order))
	for i, name := range s.settings.Order {
		order[i] = string(name)
	}

	names := make([]llm.ProviderName, 0, len(s.adapters))
	for name := range s.adapters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	infos := make([]api.ProviderInfo, 0, len(names))
	for _, name := range names {
		adapter := s.adapters[name]
		infos = append(infos, api.ProviderInfo{
			Name:       string(name),
			Model:      adapter.Model(),
			Configured: adapter.Configured(),
			Position:   s.settings.Position(name),
		})
	}

	return api.ProvidersResponse{
		Object:    "list",
		Order:     order,
		Providers: infos,
	}
}

// cacheKey separates pinned and unpinned requests for the same data.
func cacheKey(req api.SummaryRequest) string {
	sum := sha256.Sum256([]byte(req.Provider + "\x00" + req.SessionData))
	return "summary:" + hex.EncodeToString(sum[:])
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(store.ContextKeyRequestID).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
