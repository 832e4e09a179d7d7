package scoring

import (
	"github.com/sahilmaurya2006/website-security-scanner/internal/compliance"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
)

// checkDef describes one entry of the check catalogue.
type checkDef struct {
	Key         string
	Label       string
	Description string
	Passed      func(s scan.SecuritySignals) bool
}

var checkCatalogue = []checkDef{
	{
		Key:         scan.CheckHTTPS,
		Label:       "HTTPS Enabled",
		Description: "Website uses encrypted HTTPS protocol",
		Passed:      func(s scan.SecuritySignals) bool { return s.HTTPSEnabled },
	},
	{
		Key:         scan.CheckCSP,
		Label:       "Content-Security-Policy",
		Description: "Prevents XSS attacks by controlling resource loading",
		Passed:      func(s scan.SecuritySignals) bool { return s.Headers.ContentSecurityPolicy },
	},
	{
		Key:         scan.CheckXFrameOptions,
		Label:       "X-Frame-Options",
		Description: "Prevents clickjacking attacks",
		Passed:      func(s scan.SecuritySignals) bool { return s.Headers.XFrameOptions },
	},
	{
		Key:         scan.CheckXContentTypeOptions,
		Label:       "X-Content-Type-Options",
		Description: "Prevents MIME sniffing attacks",
		Passed:      func(s scan.SecuritySignals) bool { return s.Headers.XContentTypeOptions },
	},
	{
		Key:         scan.CheckHSTS,
		Label:       "Strict-Transport-Security",
		Description: "Forces HTTPS connections in the future",
		Passed:      func(s scan.SecuritySignals) bool { return s.Headers.StrictTransportSecurity },
	},
	{
		Key:         scan.CheckReferrerPolicy,
		Label:       "Referrer-Policy",
		Description: "Controls how much referrer information is shared",
		Passed:      func(s scan.SecuritySignals) bool { return s.Headers.ReferrerPolicy },
	},
	{
		Key:         scan.CheckRobotsExposed,
		Label:       "robots.txt Not Overly Exposed",
		Description: "robots.txt should not reveal sensitive paths",
		Passed:      func(s scan.SecuritySignals) bool { return !s.RobotsExposed },
	},
	{
		Key:         scan.CheckServerHiding,
		Label:       "Server Information Hidden",
		Description: "Server header should not leak version information",
		Passed:      func(s scan.SecuritySignals) bool { return !s.ServerInfoLeaked },
	},
}

// Checks evaluates the check catalogue against s.
func Checks(s scan.SecuritySignals) scan.Checks {
	checks := make(scan.Checks, 0, len(checkCatalogue))
	for _, def := range checkCatalogue {
		checks = append(checks, scan.Entry[scan.CheckOutcome]{
			Key: def.Key,
			Value: scan.CheckOutcome{
				Passed:      def.Passed(s),
				Label:       def.Label,
				Description: def.Description,
			},
		})
	}
	return checks
}

// Summarize counts the passed checks.
func Summarize(checks scan.Checks) scan.Summary {
	summary := scan.Summary{TotalChecks: len(checks)}
	for _, c := range checks {
		if c.Value.Passed {
			summary.PassedChecks++
		}
	}
	return summary
}

// Evaluate assembles a scan result for url from its signals. The result has
// no ID until it is submitted to a store.
func Evaluate(url string, s scan.SecuritySignals) scan.Result {
	score := Score(s)
	checks := Checks(s)
	return scan.Result{
		URL:             url,
		Score:           score,
		Grade:           GradeFor(score),
		RiskLevel:       RiskFor(score),
		Timestamp:       s.ObservedAt,
		ResponseTime:    s.ResponseTimeMs,
		StatusCode:      s.StatusCode,
		Checks:          checks,
		Recommendations: Recommend(s),
		Summary:         Summarize(checks),
		OWASP:           compliance.OWASP(),
		Signals:         s,
	}
}
