package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"onboarding-chatbot/internal/common/config"
	commonhttp "onboarding-chatbot/internal/common/http"
	"onboarding-chatbot/internal/common/logger"
	"onboarding-chatbot/internal/common/metrics"
)

// responseSchema guards against malformed collaborator payloads before any
// field is trusted.
const responseSchema = `{
	"type": "object",
	"properties": {
		"success": {"type": "boolean"},
		"error": {"type": "string"},
		"profile": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"description": {"type": "string"},
				"businessType": {"type": "string"},
				"phone": {"type": "string"},
				"email": {"type": "string"},
				"address": {"type": "string"},
				"city": {"type": "string"},
				"services": {"type": "array", "items": {"type": "string"}},
				"products": {"type": "array", "items": {"type": "string"}},
				"features": {"type": "array", "items": {"type": "string"}},
				"testimonials": {"type": "array", "items": {"type": "string"}},
				"socialLinks": {"type": "object"},
				"logo": {"type": "string"},
				"heroImage": {"type": "string"},
				"gallery": {"type": "array", "items": {"type": "string"}},
				"primaryColor": {"type": "string"},
				"secondaryColor": {"type": "string"},
				"aboutText": {"type": "string"},
				"confidence": {"type": "string", "enum": ["high", "medium", "low", "none"]},
				"rawText": {"type": "string"}
			}
		}
	},
	"required": ["success"]
}`

// HTTPExtractor calls the extraction engine's REST API.
type HTTPExtractor struct {
	config *config.ExtractionConfig
	client *commonhttp.Client
	head   *commonhttp.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

// NewHTTPExtractor builds the adapter. The response schema is compiled
// once up front.
func NewHTTPExtractor(cfg *config.ExtractionConfig, log logger.Logger) (*HTTPExtractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile extraction response schema: %w", err)
	}

	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	headTimeout := time.Duration(cfg.ReachabilityTimeout) * time.Millisecond

	return &HTTPExtractor{
		config: cfg,
		client: commonhttp.NewClient(timeout),
		head:   commonhttp.NewClient(headTimeout),
		schema: schema,
		logger: log.With(map[string]interface{}{"component": "extraction"}),
	}, nil
}

// ExtractFromURL posts the target URL to the extraction API, retrying with
// exponential backoff on transient failures. Every failure mode comes back
// as a Result with Success=false.
func (e *HTTPExtractor) ExtractFromURL(ctx context.Context, targetURL string) *Result {
	result := e.extract(ctx, targetURL)
	if result.Success {
		metrics.ExtractionsTotal.WithLabelValues("success").Inc()
	} else {
		metrics.ExtractionsTotal.WithLabelValues("failure").Inc()
	}
	return result
}

func (e *HTTPExtractor) extract(ctx context.Context, targetURL string) *Result {
	body, _ := json.Marshal(map[string]string{"url": targetURL})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &Result{Success: false, Error: "extraction timed out"}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			e.config.BaseURL+"/api/extraction/profile", bytes.NewReader(body))
		if err != nil {
			return &Result{Success: false, Error: fmt.Sprintf("build request: %v", err)}
		}
		req.Header.Set("Content-Type", "application/json")
		if e.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+e.config.APIKey)
		}

		resp, lastErr = e.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return &Result{Success: false, Error: "extraction timed out"}
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil || resp == nil {
		e.logger.Warn("extraction request failed", map[string]interface{}{
			"url":   targetURL,
			"error": fmt.Sprint(lastErr),
		})
		return &Result{Success: false, Error: fmt.Sprintf("extraction request failed: %v", lastErr)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("read response: %v", err)}
	}

	validation, err := e.schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("invalid response payload: %v", err)}
	}
	if !validation.Valid() {
		e.logger.Warn("extraction response failed schema validation", map[string]interface{}{
			"url":    targetURL,
			"errors": fmt.Sprint(validation.Errors()),
		})
		return &Result{Success: false, Error: "extraction response failed schema validation"}
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return &Result{Success: false, Error: fmt.Sprintf("decode response: %v", err)}
	}

	if result.Success && result.Profile != nil {
		result.Profile.SourceURL = targetURL
	}
	return &result
}

// IsURLReachable issues a HEAD request with a short deadline. Anything but
// a 5xx (or a transport error) counts as reachable.
func (e *HTTPExtractor) IsURLReachable(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}

	resp, err := e.head.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 500
}
