package scoring

import "github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"

const (
	minScore = 0
	maxScore = 100

	// httpPenalty is applied when the target is served over plain HTTP.
	httpPenalty = -10
)

// signalWeight awards points for a signal that is present.
type signalWeight struct {
	Name    string
	Points  int
	Present func(s scan.SecuritySignals) bool
}

// signalWeights defines the additive point model.
var signalWeights = []signalWeight{
	{Name: "HTTPS", Points: 20, Present: func(s scan.SecuritySignals) bool { return s.HTTPSEnabled }},
	{Name: "Content-Security-Policy", Points: 20, Present: func(s scan.SecuritySignals) bool { return s.Headers.ContentSecurityPolicy }},
	{Name: "X-Frame-Options", Points: 15, Present: func(s scan.SecuritySignals) bool { return s.Headers.XFrameOptions }},
	{Name: "X-Content-Type-Options", Points: 15, Present: func(s scan.SecuritySignals) bool { return s.Headers.XContentTypeOptions }},
	{Name: "Strict-Transport-Security", Points: 15, Present: func(s scan.SecuritySignals) bool { return s.Headers.StrictTransportSecurity }},
	{Name: "Referrer-Policy", Points: 10, Present: func(s scan.SecuritySignals) bool { return s.Headers.ReferrerPolicy }},
	{Name: "Valid SSL/TLS", Points: 5, Present: func(s scan.SecuritySignals) bool { return s.SSLValid }},
}

// RawScore sums the point model without clamping.
func RawScore(s scan.SecuritySignals) int {
	total := 0
	for _, w := range signalWeights {
		if w.Present(s) {
			total += w.Points
		}
	}
	if !s.HTTPSEnabled {
		total += httpPenalty
	}
	return total
}

// Score returns the security score in [0,100].
func Score(s scan.SecuritySignals) int {
	return clamp(RawScore(s))
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// GradeFor converts a score to a letter grade.
func GradeFor(score int) scan.Grade {
	switch {
	case score >= 90:
		return scan.GradeA
	case score >= 80:
		return scan.GradeB
	case score >= 70:
		return scan.GradeC
	case score >= 60:
		return scan.GradeD
	default:
		return scan.GradeF
	}
}

// RiskFor converts a score to a risk level.
func RiskFor(score int) scan.RiskLevel {
	switch {
	case score >= 80:
		return scan.RiskLow
	case score >= 60:
		return scan.RiskMedium
	default:
		return scan.RiskHigh
	}
}
