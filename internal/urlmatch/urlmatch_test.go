package urlmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "explicit https url inside a sentence",
			text: "Check out https://foo.io/bar please",
			want: "https://foo.io/bar",
		},
		{
			name: "explicit http url",
			text: "http://example.com",
			want: "http://example.com",
		},
		{
			name: "www domain gets https prefix",
			text: "www.example.org",
			want: "https://www.example.org",
		},
		{
			name: "www domain inside a sentence",
			text: "our site is www.acme-bakery.com thanks",
			want: "https://www.acme-bakery.com",
		},
		{
			name: "bare domain on the allow-list",
			text: "acmebakery.com",
			want: "https://acmebakery.com",
		},
		{
			name: "bare domain with path",
			text: "find us at acmebakery.io/menu today",
			want: "https://acmebakery.io/menu",
		},
		{
			name: "email address does not match",
			text: "my email is a@b.com",
			want: "",
		},
		{
			name: "ordinary sentence with periods",
			text: "We opened in 2019. Best bakery in town.",
			want: "",
		},
		{
			name: "unknown tld does not match",
			text: "something.xyz",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
		{
			name: "scheme match wins over bare domain",
			text: "see https://foo.io and also bar.com",
			want: "https://foo.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectURL(tt.text))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL("  example.com  "))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "https://example.com", NormalizeURL("https://example.com"))
	assert.Equal(t, "", NormalizeURL(""))
}

func TestIsValidURLFormat(t *testing.T) {
	assert.True(t, IsValidURLFormat("https://example.com"))
	assert.True(t, IsValidURLFormat("http://example.com/path?q=1"))
	assert.False(t, IsValidURLFormat("https://"))
	assert.False(t, IsValidURLFormat("ftp://example.com"))
	assert.False(t, IsValidURLFormat("not a url"))
	assert.False(t, IsValidURLFormat("https://localhost"))
}
