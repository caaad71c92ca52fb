// Package client is the BankUp REST API client used by the services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("client")

// ServiceName labels errors and the circuit breaker of the BankUp API.
const ServiceName = "bankup-api"

const maxErrorBody = 64 << 10

// TokenSource yields the bearer token of the logged-in user. An empty token
// means nobody is logged in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client calls the BankUp REST API with bulkhead, circuit breaker, retry
// (idempotent GETs only), tracing and metrics around every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	tokens     TokenSource
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New creates a Client. cb should be built with IsSuccessful so client errors
// do not trip it.
func New(
	httpClient *http.Client,
	baseURL string,
	cb *gobreaker.CircuitBreaker,
	cfg resilience.Config,
	tokens TokenSource,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		tokens:     tokens,
		metrics:    metrics,
		logger:     logger,
	}
}

// IsSuccessful tells the circuit breaker which outcomes are healthy: success
// and answers the server chose to reject (4xx).
func IsSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *domain.ErrAPI
	return errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError
}

type authMode int

const (
	authNone authMode = iota
	authSession
	authExplicit
)

// call describes one API request.
type call struct {
	op       string
	method   string
	path     string
	body     any
	out      any
	auth     authMode
	token    string
	fallback string
}

func (c *Client) do(ctx context.Context, rc call) error {
	ctx, span := tracer.Start(ctx, "Client."+rc.op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", rc.method),
		attribute.String("http.path", rc.path),
	)

	start := time.Now()
	defer func() { c.metrics.RecordRequestDuration(rc.op, time.Since(start)) }()

	err := c.execute(ctx, rc)
	if err == nil {
		c.metrics.IncrRequest("success")
		return nil
	}

	c.metrics.IncrRequest("error")
	c.metrics.IncrAPIError(rc.op)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (c *Client) execute(ctx context.Context, rc call) error {
	token := rc.token
	if rc.auth == authSession {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if t == "" {
			return &domain.ErrUnauthorized{Message: "Sessão expirada. Faça login novamente."}
		}
		token = t
	}

	var payload []byte
	if rc.body != nil {
		b, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", rc.op, err)
		}
		payload = b
	}

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return &domain.ErrExternalService{Service: ServiceName, Err: err}
	}
	defer c.bulkhead.Release()

	retryCfg := c.cfg
	if rc.method != http.MethodGet {
		retryCfg.MaxRetries = 0
	}

	attempt := func() error {
		return c.roundTrip(ctx, rc, token, payload)
	}

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, retryCfg, attempt)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("circuit breaker rejected call", zap.String("operation", rc.op), traceField(ctx))
		return &domain.ErrCircuitOpen{Service: ServiceName}
	}

	var apiErr *domain.ErrAPI
	if errors.As(err, &apiErr) {
		c.logger.Warn("bankup api rejected call",
			zap.String("operation", rc.op),
			zap.Int("status", apiErr.Status),
			zap.String("msg", apiErr.Message),
			traceField(ctx),
		)
		return apiErr
	}

	c.logger.Error("bankup api call failed",
		zap.String("operation", rc.op),
		zap.Error(err),
		traceField(ctx),
	)
	return &domain.ErrExternalService{Service: ServiceName, Err: err}
}

// traceField tags a log line with the current trace, if any.
func traceField(ctx context.Context) zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return zap.Skip()
	}
	return zap.String("trace_id", sc.TraceID().String())
}

// roundTrip performs one HTTP attempt. Client errors and decode failures are
// wrapped with resilience.Permanent; transport errors and 5xx are retried.
func (c *Client) roundTrip(ctx context.Context, rc call, token string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, c.baseURL+rc.path, body)
	if err != nil {
		return resilience.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeAPIError(resp, rc.fallback)
		if resp.StatusCode >= http.StatusInternalServerError {
			return apiErr
		}
		return resilience.Permanent(apiErr)
	}

	if rc.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(rc.out); err != nil {
		return resilience.Permanent(fmt.Errorf("decode %s response: %w", rc.op, err))
	}
	return nil
}

// decodeAPIError reads the `{"msg"}` body of a failed call. When the server
// sends no message the per-operation fallback is used.
func decodeAPIError(resp *http.Response, fallback string) *domain.ErrAPI {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Msg != "":
			msg = body.Msg
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = fmt.Sprintf("Erro %d ao comunicar com o servidor.", resp.StatusCode)
	}
	return &domain.ErrAPI{Status: resp.StatusCode, Message: msg}
}
