package scan

import "time"

// HeaderFlags records which security headers the target returned.
type HeaderFlags struct {
	ContentSecurityPolicy   bool `json:"contentSecurityPolicy"`
	StrictTransportSecurity bool `json:"strictTransportSecurity"`
	XFrameOptions           bool `json:"xFrameOptions"`
	XContentTypeOptions     bool `json:"xContentTypeOptions"`
	ReferrerPolicy          bool `json:"referrerPolicy"`
}

// SecuritySignals is everything a scan observed about a target. It is built
// once per scan attempt and treated as a value from then on.
type SecuritySignals struct {
	HTTPSEnabled     bool        `json:"httpsEnabled"`
	Headers          HeaderFlags `json:"headerFlags"`
	RobotsExposed    bool        `json:"robotsExposed"`
	ServerInfoLeaked bool        `json:"serverInfoLeaked"`
	// SSLValid is always true: certificate chains are not validated.
	SSLValid       bool      `json:"sslValid"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
	StatusCode     int       `json:"statusCode"`
	ObservedAt     time.Time `json:"observedAt"`
}
