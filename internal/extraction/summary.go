package extraction

import (
	"fmt"
	"strings"

	"onboarding-chatbot/internal/profile"
)

// GenerateSummary renders a fixed-order digest of the candidate profile.
// Equal profiles always produce byte-identical output; the confirmation
// prompt embeds this text verbatim.
func (e *HTTPExtractor) GenerateSummary(p *profile.ExtractedProfile) string {
	return Summary(p)
}

// Summary is the shared implementation so stub extractors in tests can
// reuse the exact rendering.
func Summary(p *profile.ExtractedProfile) string {
	if p == nil {
		return "No profile details were extracted."
	}

	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	fmt.Fprintf(&b, "- Business name: %s\n", valueOr(p.Name, "unknown"))
	fmt.Fprintf(&b, "- Category: %s\n", valueOr(p.BusinessType, "unknown"))
	if p.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", p.Description)
	}
	if p.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", p.Phone)
	}
	if p.Email != "" {
		fmt.Fprintf(&b, "- Email: %s\n", p.Email)
	}
	if p.Address != "" || p.City != "" {
		fmt.Fprintf(&b, "- Location: %s\n", joinNonEmpty(p.Address, p.City))
	}
	if n := len(p.Services); n > 0 {
		fmt.Fprintf(&b, "- Services: %d found\n", n)
	}
	if n := len(p.Products); n > 0 {
		fmt.Fprintf(&b, "- Products: %d found\n", n)
	}
	if line := profile.SocialLinksLine(p.SocialLinks); line != "" {
		fmt.Fprintf(&b, "- Social links: %s\n", line)
	}
	if p.Logo != "" || p.HeroImage != "" || len(p.Gallery) > 0 {
		fmt.Fprintf(&b, "- Visuals: %s\n", visualsLine(p))
	}
	return strings.TrimRight(b.String(), "\n")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func visualsLine(p *profile.ExtractedProfile) string {
	var kept []string
	if p.Logo != "" {
		kept = append(kept, "logo")
	}
	if p.HeroImage != "" {
		kept = append(kept, "hero image")
	}
	if n := len(p.Gallery); n > 0 {
		kept = append(kept, fmt.Sprintf("%d gallery images", n))
	}
	return strings.Join(kept, ", ")
}
