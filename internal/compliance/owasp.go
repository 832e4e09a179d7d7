package compliance

import "github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"

// OWASP returns the mapping of security checks to OWASP Top 10 categories.
// The table is educational context for reports; it carries no scoring weight.
// Each call returns a fresh copy so results never share backing arrays.
func OWASP() scan.OWASPMapping {
	return scan.OWASPMapping{
		// Transport
		{Key: scan.CheckHTTPS, Value: scan.OWASPCategory{
			ID:          "A02",
			Title:       "Cryptographic Failures",
			Description: "Missing or weak TLS/HTTPS may expose data in transit.",
		}},

		// Content injection
		{Key: scan.CheckCSP, Value: scan.OWASPCategory{
			ID:          "A03",
			Title:       "Injection / XSS Mitigation",
			Description: "CSP helps mitigate XSS and content injection risks.",
		}},

		// Browser hardening headers
		{Key: scan.CheckXFrameOptions, Value: scan.OWASPCategory{
			ID:          "A05",
			Title:       "Security Misconfiguration",
			Description: "Clickjacking protections prevent UI redress attacks.",
		}},
		{Key: scan.CheckXContentTypeOptions, Value: scan.OWASPCategory{
			ID:          "A05",
			Title:       "Security Misconfiguration",
			Description: "Prevents MIME sniffing and accidental content execution.",
		}},
		{Key: scan.CheckHSTS, Value: scan.OWASPCategory{
			ID:          "A02",
			Title:       "Cryptographic Failures",
			Description: "HSTS enforces HTTPS and helps prevent protocol downgrade attacks.",
		}},
		{Key: scan.CheckReferrerPolicy, Value: scan.OWASPCategory{
			ID:          "A05",
			Title:       "Security Misconfiguration",
			Description: "Controls referrer information to avoid data leakage.",
		}},

		// Information disclosure
		{Key: scan.CheckRobotsExposed, Value: scan.OWASPCategory{
			ID:          "A06",
			Title:       "Security Misconfiguration",
			Description: "Exposed robots.txt can leak sensitive paths and help attackers reconnaissance.",
		}},
		{Key: scan.CheckServerHiding, Value: scan.OWASPCategory{
			ID:          "A05",
			Title:       "Security Misconfiguration",
			Description: "Server banners may reveal versions and widen attack surface.",
		}},
	}
}
