// Package extraction defines the boundary with the external profile
// extraction engine: the collaborator that turns a URL into a raw
// candidate profile. The orchestrator only ever sees this interface; all
// failure modes surface through Result, never through panics or errors.
package extraction

import (
	"context"

	"onboarding-chatbot/internal/profile"
)

// Result is the collaborator's answer for one URL.
type Result struct {
	Success bool                      `json:"success"`
	Profile *profile.ExtractedProfile `json:"profile,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// Service is the extraction collaborator consumed by the orchestrator.
type Service interface {
	// ExtractFromURL fetches and parses the page behind url into a raw
	// candidate profile. It must return within a bounded time and never
	// panic; failures come back as Success=false.
	ExtractFromURL(ctx context.Context, url string) *Result

	// IsURLReachable is an optional pre-check; not required for
	// correctness.
	IsURLReachable(ctx context.Context, url string) bool

	// GenerateSummary renders a human-readable digest of the candidate,
	// used verbatim in the confirmation prompt. Deterministic for equal
	// profiles.
	GenerateSummary(p *profile.ExtractedProfile) string
}
