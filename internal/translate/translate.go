// Package translate turns source-language text into the target language.
// It never fails visibly: when every provider is down the original text is
// returned unchanged so the pipeline keeps moving.
package translate

import (
	"context"
	"net/http"

	"github.com/gkpulse/bixquiz/internal/config"
	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/metrics"
	"github.com/gkpulse/bixquiz/internal/ratelimit"
	"github.com/gkpulse/bixquiz/internal/retry"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

type Translator struct {
	target     string
	endpoint   string
	httpClient *http.Client
	retryCfg   retry.RetryConfig
	limiter    *ratelimit.Limiter

	gemini    *geminiClient
	openaiKey string
}

func New(cfg *config.Config) *Translator {
	t := &Translator{
		target:     cfg.TargetLang,
		endpoint:   googleEndpoint,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		retryCfg: retry.RetryConfig{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
		},
		limiter:   ratelimit.New(cfg.MaxGeminiRequests, cfg.MaxOpenAIRequests, 0),
		openaiKey: cfg.OpenAIAPIKey,
	}

	if cfg.GeminiAPIKey != "" {
		gc, err := newGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("Gemini client unavailable, fallback disabled", "error", err)
		} else {
			t.gemini = gc
		}
	}

	return t
}

// Translate converts text to the target language. Transient failures are
// retried with a fixed delay; when the free endpoint stays down the paid
// fallbacks are tried within their daily budget; when everything fails the
// original text comes back and the error is only logged.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if text == "" {
		return text
	}

	var result string
	err := retry.WithRetry(ctx, t.retryCfg, func() error {
		out, gerr := t.googleTranslate(ctx, text)
		if gerr != nil {
			return gerr
		}
		result = out
		return nil
	})
	if err == nil && result != "" {
		return result
	}
	logger.Warn("Google Translate failed", "target", t.target, "error", err)

	if t.gemini != nil && t.limiter.CanUseGemini() {
		if err := t.limiter.UseGemini(); err == nil {
			out, gerr := t.gemini.Translate(ctx, text, t.target)
			if gerr == nil && out != "" {
				return out
			}
			logger.Warn("Gemini translation failed", "error", gerr)
		}
	}

	if t.openaiKey != "" && t.limiter.CanUseOpenAI() {
		if err := t.limiter.UseOpenAI(); err == nil {
			out, oerr := t.openaiTranslate(ctx, text)
			if oerr == nil && out != "" {
				return out
			}
			logger.Warn("OpenAI translation failed", "error", oerr)
		}
	}

	metrics.Global.IncrementTranslationsFailed()
	logger.Error("all translation providers failed, using original text", "target", t.target)
	return text
}

// Close releases the Gemini client, if one was created.
func (t *Translator) Close() {
	if t.gemini != nil {
		t.gemini.Close()
	}
}

// languageName maps an ISO code to the name used in provider prompts.
func languageName(code string) string {
	switch code {
	case "gu":
		return "Gujarati"
	case "hi":
		return "Hindi"
	case "bn":
		return "Bengali"
	case "ta":
		return "Tamil"
	case "uk":
		return "Ukrainian"
	}
	return code
}
