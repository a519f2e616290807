// Package ai wraps the three completion flows the app relies on: rewards
// recommendations, batch translation, and harvest photo verification. Each
// flow validates its input, renders a fixed prompt, makes one completion
// round-trip and parses the result strictly against its declared shape.
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/herb-harvest/internal/metrics"
	"github.com/sells-group/herb-harvest/internal/resilience"
)

var (
	// ErrSchema means the completion did not match the declared output shape.
	ErrSchema = errors.New("ai: completion does not match schema")
	// ErrInvalidInput means a flow input failed validation before any call.
	ErrInvalidInput = errors.New("ai: invalid input")
)

const defaultTimeout = 60 * time.Second

// Options configures a Client.
type Options struct {
	// Provider is used for log and metric labels only.
	Provider string

	Timeout           time.Duration
	RequestsPerSecond float64
	Retry             resilience.RetryConfig
}

// Client runs the completion flows against a Completer.
type Client struct {
	completer Completer
	provider  string
	timeout   time.Duration
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
	validate  *validator.Validate
}

// NewClient creates a Client. A zero Timeout means 60s; a non-positive
// RequestsPerSecond disables rate limiting.
func NewClient(c Completer, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	provider := opts.Provider
	if provider == "" {
		provider = "unknown"
	}
	return &Client{
		completer: c,
		provider:  provider,
		timeout:   timeout,
		limiter:   rate.NewLimiter(limit, 1),
		retry:     opts.Retry,
		validate:  validator.New(),
	}
}

func (c *Client) check(flow string, input any) error {
	if err := c.validate.Struct(input); err != nil {
		return eris.Wrapf(ErrInvalidInput, "ai: %s: %v", flow, err)
	}
	return nil
}

// complete performs the round-trip and returns the raw completion text.
func (c *Client) complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.AIRequestsTotal.WithLabelValues(req.Flow, c.provider, metrics.OutcomeRateLimited).Inc()
		return "", eris.Wrapf(err, "ai: %s: wait for rate limiter", req.Flow)
	}

	retry := c.retry
	retry.OnRetry = resilience.RetryLogger(c.provider, req.Flow)

	start := time.Now()
	comp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*Completion, error) {
		return c.completer.Complete(ctx, req)
	})
	elapsed := time.Since(start)
	metrics.AIRequestDuration.WithLabelValues(req.Flow, c.provider).Observe(elapsed.Seconds())

	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(req.Flow, c.provider, metrics.OutcomeError).Inc()
		zap.L().Error("completion failed",
			zap.String("flow", req.Flow),
			zap.String("provider", c.provider),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return "", eris.Wrapf(err, "ai: %s", req.Flow)
	}

	metrics.AITokensTotal.WithLabelValues(req.Flow, c.provider, "input").Add(float64(comp.InputTokens))
	metrics.AITokensTotal.WithLabelValues(req.Flow, c.provider, "output").Add(float64(comp.OutputTokens))
	zap.L().Info("completion finished",
		zap.String("flow", req.Flow),
		zap.String("provider", c.provider),
		zap.Duration("duration", elapsed),
		zap.Int64("input_tokens", comp.InputTokens),
		zap.Int64("output_tokens", comp.OutputTokens),
	)
	return comp.Text, nil
}

// parsed records the outcome of a strict parse.
func (c *Client) parsed(flow string, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeSchema
		zap.L().Warn("completion rejected by schema", zap.String("flow", flow), zap.Error(err))
	}
	metrics.AIRequestsTotal.WithLabelValues(flow, c.provider, outcome).Inc()
}
