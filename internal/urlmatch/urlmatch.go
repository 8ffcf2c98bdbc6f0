// Package urlmatch detects and normalizes URL substrings inside free-form
// user text. Detection is deliberately conservative: bare domains only
// match against a fixed TLD allow-list so ordinary sentences containing
// periods do not produce false positives.
package urlmatch

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	schemeURLPattern  = regexp.MustCompile(`https?://\S+`)
	wwwURLPattern     = regexp.MustCompile(`\bwww\.[a-zA-Z0-9-]+\.[a-zA-Z]{2,}\S*`)
	bareDomainPattern = regexp.MustCompile(
		`\b[a-zA-Z0-9-]+\.(?:com|net|org|io|co|uk|us|ca|au|de|fr|app|dev|tech)(?:/\S*)?\b`)
)

// DetectURL scans text for a URL substring. It tries, in order: an
// explicit http(s) URL, a www.-prefixed domain, and a bare domain from the
// TLD allow-list. The first match wins; www and bare matches come back
// https-prefixed. Returns "" when nothing matches.
func DetectURL(text string) string {
	if match := schemeURLPattern.FindString(text); match != "" {
		return match
	}
	if match := wwwURLPattern.FindString(text); match != "" {
		return "https://" + match
	}
	// Reject anything that looks like an email address before the bare
	// domain scan; "a@b.com" must not match.
	if match := bareDomainPattern.FindString(text); match != "" && !partOfEmail(text, match) {
		return "https://" + match
	}
	return ""
}

// NormalizeURL prefixes https:// when no scheme is present.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// IsValidURLFormat performs structural URL-syntax validation only; no
// network access.
func IsValidURLFormat(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := parsed.Hostname()
	return host != "" && strings.Contains(host, ".")
}

func partOfEmail(text, match string) bool {
	idx := strings.Index(text, match)
	for idx >= 0 {
		if idx > 0 && text[idx-1] == '@' {
			return true
		}
		next := strings.Index(text[idx+1:], match)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}
