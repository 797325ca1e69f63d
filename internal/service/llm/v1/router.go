// Package llm provides OpenAI and Gemini providers and a fallback router over them.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/metrics"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/modelstudy"
)

const retryDelay = 100 * time.Millisecond

var (
	_ llm.Assistant = (*Router)(nil)
)

// Router tries providers in order until one of them answers.
type Router struct {
	providers []llm.Provider
	attempts  uint
	limiter   *rate.Limiter
}

// InitRouter initializes a Router over the given providers.
// A non-positive rps disables rate limiting.
func InitRouter(providers []llm.Provider, attempts uint, rps float64) *Router {
	if attempts == 0 {
		attempts = 1
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Router{
		providers: providers,
		attempts:  attempts,
		limiter:   limiter,
	}
}

// NewRouter builds the provider chain from configuration: OpenAI first unless
// Gemini is forced or no OpenAI key is set, then Gemini when a key is present.
func NewRouter(ctx context.Context, c *config.Config, httpClient *http.Client) (*Router, error) {
	var providers []llm.Provider
	if !c.UseGeminiAlways && c.OpenAIKey != "" {
		providers = append(providers, NewOpenAIProvider(c, httpClient))
	}
	if c.GeminiKey != "" {
		gemini, err := NewGeminiProvider(ctx, c, httpClient)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
	}
	if len(providers) == 0 {
		log.Warn("No language model provider configured, completions will fail")
	}
	return InitRouter(providers, c.Attempts, c.RateLimit), nil
}

// Providers returns provider names in call order.
func (r *Router) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Complete returns the first successful answer or NoProviderError wrapping the last failure.
func (r *Router) Complete(ctx context.Context, messages []modelstudy.Message) (string, error) {
	if len(r.providers) == 0 {
		return "", &serviceErrors.NoProviderError{Err: errors.New("no language model provider configured")}
	}
	var lastErr error
	for i, p := range r.providers {
		answer, err := r.call(ctx, p, messages)
		if err == nil {
			if i > 0 {
				metrics.LLMFallbacks.Inc()
			}
			return answer, nil
		}
		lastErr = err
		logger := log.WithField("provider", p.Name())
		var quotaErr *serviceErrors.ProviderQuotaError
		if errors.As(err, &quotaErr) {
			logger.Warn("Provider quota exhausted: ", err)
		} else {
			logger.Error("Provider failed: ", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", &serviceErrors.NoProviderError{Err: lastErr}
}

func (r *Router) call(ctx context.Context, p llm.Provider, messages []modelstudy.Message) (string, error) {
	var answer string
	err := retry.Do(
		func() error {
			if err := r.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			var err error
			answer, err = p.Complete(ctx, messages)
			switch {
			case err == nil:
				metrics.LLMRequests.WithLabelValues(p.Name(), metrics.OutcomeSuccess).Inc()
			case isQuota(err):
				metrics.LLMRequests.WithLabelValues(p.Name(), metrics.OutcomeQuota).Inc()
			default:
				metrics.LLMRequests.WithLabelValues(p.Name(), metrics.OutcomeFailure).Inc()
			}
			return err
		},
		retry.Attempts(r.attempts),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			return !isQuota(err)
		}),
	)
	return answer, err
}

func isQuota(err error) bool {
	var quotaErr *serviceErrors.ProviderQuotaError
	return errors.As(err, &quotaErr)
}
