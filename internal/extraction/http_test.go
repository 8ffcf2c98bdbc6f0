package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding-chatbot/internal/common/config"
	"onboarding-chatbot/internal/common/logger"
	"onboarding-chatbot/internal/profile"
)

func newExtractorForServer(t *testing.T, srv *httptest.Server, maxRetries int) *HTTPExtractor {
	t.Helper()
	e, err := NewHTTPExtractor(&config.ExtractionConfig{
		BaseURL:             srv.URL,
		APIKey:              "test-key",
		Timeout:             2000,
		MaxRetries:          maxRetries,
		ReachabilityTimeout: 500,
	}, logger.NewTestLogger(t))
	require.NoError(t, err)
	return e
}

func TestExtractFromURL_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/extraction/profile", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://acmebakery.com", req["url"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"profile": map[string]interface{}{
				"name":         "Acme Bakery",
				"businessType": "bakery",
				"services":     []string{"Custom cakes"},
				"confidence":   "high",
			},
		})
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 0)
	result := e.ExtractFromURL(context.Background(), "https://acmebakery.com")

	require.True(t, result.Success)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Acme Bakery", result.Profile.Name)
	assert.Equal(t, "bakery", result.Profile.BusinessType)
	assert.Equal(t, profile.ConfidenceHigh, result.Profile.Confidence)
	assert.Equal(t, "https://acmebakery.com", result.Profile.SourceURL)
}

func TestExtractFromURL_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"profile": map[string]interface{}{"name": "Acme Bakery"},
		})
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 2)
	result := e.ExtractFromURL(context.Background(), "https://acmebakery.com")

	require.True(t, result.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestExtractFromURL_RetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 1)
	result := e.ExtractFromURL(context.Background(), "https://acmebakery.com")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "status 500")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestExtractFromURL_CollaboratorReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "site blocked crawling",
		})
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 0)
	result := e.ExtractFromURL(context.Background(), "https://acmebakery.com")

	assert.False(t, result.Success)
	assert.Equal(t, "site blocked crawling", result.Error)
}

func TestExtractFromURL_SchemaInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing the required "success" field.
		w.Write([]byte(`{"profile": {"name": "Acme"}}`))
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 0)
	result := e.ExtractFromURL(context.Background(), "https://acmebakery.com")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "schema validation")
}

func TestExtractFromURL_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	e := newExtractorForServer(t, srv, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := e.ExtractFromURL(ctx, "https://acmebakery.com")

	assert.False(t, result.Success)
	assert.Equal(t, "extraction timed out", result.Error)
}

func TestIsURLReachable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"redirect", http.StatusMovedPermanently, true},
		{"not found still counts as reachable", http.StatusNotFound, true},
		{"server error is unreachable", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			e := newExtractorForServer(t, srv, 0)
			assert.Equal(t, tt.want, e.IsURLReachable(context.Background(), srv.URL))
		})
	}
}

func TestIsURLReachable_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	e := newExtractorForServer(t, srv, 0)
	srv.Close()

	assert.False(t, e.IsURLReachable(context.Background(), srv.URL))
}

func TestSummary_Deterministic(t *testing.T) {
	p := &profile.ExtractedProfile{
		Data: profile.Data{
			Name:         "Acme Bakery",
			BusinessType: "bakery",
			Description:  "Artisan breads",
			Phone:        "+1 555 0100",
			Address:      "1 Main St",
			City:         "Springfield",
			Services:     []string{"Custom cakes", "Catering"},
			SocialLinks: map[string]string{
				"twitter":   "https://t.example",
				"instagram": "https://i.example",
			},
			Logo:    "logo.png",
			Gallery: []string{"a.jpg", "b.jpg"},
		},
	}

	first := Summary(p)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Summary(p))
	}

	assert.Contains(t, first, "Business name: Acme Bakery")
	assert.Contains(t, first, "Category: bakery")
	assert.Contains(t, first, "Location: 1 Main St, Springfield")
	assert.Contains(t, first, "Services: 2 found")
	assert.Contains(t, first, "instagram")
	assert.Contains(t, first, "logo, 2 gallery images")
}

func TestSummary_NilAndSparseProfiles(t *testing.T) {
	assert.Equal(t, "No profile details were extracted.", Summary(nil))

	sparse := Summary(&profile.ExtractedProfile{Data: profile.Data{Name: "Acme"}})
	assert.Contains(t, sparse, "Business name: Acme")
	assert.Contains(t, sparse, "Category: unknown")
	assert.NotContains(t, sparse, "Phone")
}
