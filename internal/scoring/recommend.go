package scoring

import "github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"

// remediation is a recommendation emitted when Applies holds.
type remediation struct {
	Applies  func(s scan.SecuritySignals) bool
	Severity scan.Severity
	Issue    string
	Fix      string
}

// remediations is evaluated in priority order. The issue strings are part of
// the API contract.
var remediations = []remediation{
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.HTTPSEnabled },
		Severity: scan.SeverityHigh,
		Issue:    "No HTTPS",
		Fix:      "Install SSL/TLS certificate and redirect all HTTP traffic to HTTPS",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.Headers.ContentSecurityPolicy },
		Severity: scan.SeverityHigh,
		Issue:    "Missing Content-Security-Policy",
		Fix:      "Add CSP header: Content-Security-Policy: default-src 'self'",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.Headers.XFrameOptions },
		Severity: scan.SeverityMedium,
		Issue:    "Missing X-Frame-Options",
		Fix:      "Add X-Frame-Options: DENY to prevent clickjacking attacks",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.Headers.XContentTypeOptions },
		Severity: scan.SeverityMedium,
		Issue:    "Missing X-Content-Type-Options",
		Fix:      "Add X-Content-Type-Options: nosniff to prevent MIME sniffing",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.Headers.StrictTransportSecurity },
		Severity: scan.SeverityMedium,
		Issue:    "Missing Strict-Transport-Security",
		Fix:      "Add HSTS header: Strict-Transport-Security: max-age=31536000",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return !s.Headers.ReferrerPolicy },
		Severity: scan.SeverityLow,
		Issue:    "Missing Referrer-Policy",
		Fix:      "Add Referrer-Policy: strict-origin-when-cross-origin for privacy",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return s.ServerInfoLeaked },
		Severity: scan.SeverityLow,
		Issue:    "Server Information Leakage",
		Fix:      "Hide or obfuscate the Server header to reduce information exposure",
	},
	{
		Applies:  func(s scan.SecuritySignals) bool { return s.RobotsExposed },
		Severity: scan.SeverityLow,
		Issue:    "robots.txt is Accessible",
		Fix:      "Ensure robots.txt doesn't expose sensitive paths or consider restricting access",
	},
}

// Recommend lists the remediations that apply to s, highest priority first.
// The result is never nil.
func Recommend(s scan.SecuritySignals) []scan.Recommendation {
	recs := make([]scan.Recommendation, 0, len(remediations))
	for _, r := range remediations {
		if !r.Applies(s) {
			continue
		}
		recs = append(recs, scan.Recommendation{
			Severity: r.Severity,
			Issue:    r.Issue,
			Fix:      r.Fix,
		})
	}
	return recs
}
