package constants

import "time"

const (
	// FetchTimeout bounds the primary page request, redirects included.
	FetchTimeout = 8 * time.Second
	// RobotsTimeout bounds the robots.txt probe.
	RobotsTimeout = 5 * time.Second
	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 5
	// UserAgent identifies the scanner to target sites.
	UserAgent = "SecurityScanner/1.0 (Website Security Analysis)"
	// BodyDrainLimitBytes caps how much of a response body is read before the
	// connection is released.
	BodyDrainLimitBytes = 1 << 20
)

const (
	// DefaultHistoryCapacity is the number of scans kept in memory.
	DefaultHistoryCapacity = 50
	// DefaultAddr mirrors the port the service has always listened on.
	DefaultAddr = ":5000"
	// MaxRequestBodyBytes limits JSON request bodies on the API.
	MaxRequestBodyBytes = 1 << 20
)
