// Package translator turns Traditional Chinese strings into English via an
// OpenAI-compatible chat model, with fixed-translation and term-dictionary
// short circuits consulted before any backend call.
package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docx-translator/internal/detect"
	"docx-translator/internal/logger"
	"docx-translator/internal/terms"
	"docx-translator/internal/types"
)

const (
	// MaxRetries is the number of attempts against the backend before a
	// string is given up on.
	MaxRetries = 3
	// BaseRetryDelay is multiplied by the attempt number between retries.
	BaseRetryDelay = 2 * time.Second
)

// Engine translates individual strings. Leading indentation survives the
// round trip, and strings without Chinese text pass through untouched.
type Engine struct {
	backend    Backend
	dictionary *terms.Dictionary
	fixed      map[string]string
	maxRetries int
	baseDelay  time.Duration

	backendCalls    int
	backendFailures int
}

// NewEngine creates an Engine on top of the given backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{
		backend:    backend,
		maxRetries: MaxRetries,
		baseDelay:  BaseRetryDelay,
	}
}

// SetDictionary installs the term dictionary consulted for whole-string
// matches and for the term reference attached to prompts.
func (e *Engine) SetDictionary(d *terms.Dictionary) {
	e.dictionary = d
}

// SetFixedTranslations installs exact source-to-target overrides checked
// before everything else.
func (e *Engine) SetFixedTranslations(fixed map[string]string) {
	e.fixed = fixed
}

// BackendCalls returns the number of chat completions attempted.
func (e *Engine) BackendCalls() int { return e.backendCalls }

// BackendFailures returns the number of strings for which every attempt
// failed.
func (e *Engine) BackendFailures() int { return e.backendFailures }

// Translate returns the English rendering of text. Empty strings and
// strings without Chinese characters come back unchanged. The error is
// non-nil only after every retry has failed; callers typically keep the
// original text in that case.
func (e *Engine) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" || !detect.HasChinese(text) {
		return text, nil
	}

	indent := detect.IndentPrefix(text)
	core := strings.TrimSpace(text)

	if target, ok := e.fixed[core]; ok {
		logger.Debug("fixed translation hit", logger.String("source", core))
		return indent + target, nil
	}
	if e.dictionary != nil {
		if english, ok := e.dictionary.Lookup(core); ok {
			logger.Debug("term dictionary hit", logger.String("source", core))
			return indent + english, nil
		}
	}

	translated, err := e.generateWithRetry(ctx, core)
	if err != nil {
		e.backendFailures++
		return text, err
	}
	return indent + translated, nil
}

// generateWithRetry calls the backend with linear backoff between
// attempts.
func (e *Engine) generateWithRetry(ctx context.Context, text string) (string, error) {
	userPrompt := buildUserPrompt(text, e.dictionary)

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		e.backendCalls++
		translated, err := e.backend.Generate(ctx, systemPrompt, userPrompt)
		if err == nil {
			return strings.TrimSpace(translated), nil
		}

		lastErr = err
		logger.Warn("translation attempt failed", logger.Int("attempt", attempt), logger.Err(err))

		if attempt < e.maxRetries {
			delay := e.baseDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	logger.Error("translation failed after all retries", lastErr, logger.Int("maxRetries", e.maxRetries))
	return "", types.NewAppErrorWithDetails(
		types.ErrTranslation,
		"translation failed after multiple retries",
		fmt.Sprintf("attempted %d times", e.maxRetries),
		lastErr,
	)
}

// CheckConnection verifies the backend is reachable and the model
// actually answers. The model is asked to reply "ok".
func (e *Engine) CheckConnection(ctx context.Context) error {
	logger.Info("testing backend connection")

	response, err := e.backend.Generate(ctx, "", "Reply with only the word 'ok', nothing else.")
	if err != nil {
		logger.Error("backend connection test failed", err)
		return types.NewAppError(types.ErrNetwork, "backend connection failed", err)
	}

	reply := strings.ToLower(strings.TrimSpace(response))
	if !strings.Contains(reply, "ok") {
		logger.Error("model gave unexpected test reply", nil, logger.String("response", reply))
		return types.NewAppErrorWithDetails(types.ErrAPICall, "unexpected model reply",
			fmt.Sprintf("expected 'ok', got: %s", reply), nil)
	}

	logger.Info("backend connection test successful")
	return nil
}
