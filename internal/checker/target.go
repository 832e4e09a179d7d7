package checker

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	sharedErrors "github.com/sahilmaurya2006/website-security-scanner/internal/shared/errors"
)

// ErrInvalidURL reports a target that is not an absolute http(s) URL even
// after normalization.
var ErrInvalidURL = fmt.Errorf("%w: invalid URL", sharedErrors.ErrInvalidInput)

// TargetInfo contains parsed target information
type TargetInfo struct {
	Original string // Original target string
	Scheme   string // http or https
	Host     string // Hostname (without port)
	Port     string // Port if specified
	Origin   string // scheme://host[:port]
	FullURL  string // Normalized absolute URL
}

// RobotsURL returns the robots.txt location for the target's origin.
func (t *TargetInfo) RobotsURL() string {
	return t.Origin + "/robots.txt"
}

// NormalizeURL prepends https:// to targets without an http(s) scheme and
// returns the resulting URL string. Input is trimmed first.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// ParseTarget normalizes and validates a target. Accepted inputs include:
//   - example.com
//   - http://example.com
//   - https://example.com:8443/path?q=1
func ParseTarget(target string) (*TargetInfo, error) {
	normalized := NormalizeURL(target)

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidURL, target, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: %s: unsupported scheme %q", ErrInvalidURL, target, parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: %s: missing host", ErrInvalidURL, target)
	}
	if port := parsed.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("%w: %s: port %q out of range", ErrInvalidURL, target, port)
		}
	}

	return &TargetInfo{
		Original: target,
		Scheme:   scheme,
		Host:     parsed.Hostname(),
		Port:     parsed.Port(),
		Origin:   scheme + "://" + parsed.Host,
		FullURL:  normalized,
	}, nil
}
