package checker

import (
	"strings"

	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
)

// Security header names, lower-cased.
const (
	headerCSP                 = "content-security-policy"
	headerHSTS                = "strict-transport-security"
	headerXFrameOptions       = "x-frame-options"
	headerXContentTypeOptions = "x-content-type-options"
	headerReferrerPolicy      = "referrer-policy"
	headerServer              = "server"
)

// hiddenServerBanner is the one Server value not counted as a leak.
const hiddenServerBanner = "hidden"

// ExtractSignals derives the security signals of a scan from the primary
// fetch and the robots.txt probe. It performs no I/O.
func ExtractSignals(outcome FetchOutcome, robotsExposed bool) scan.SecuritySignals {
	h := outcome.Headers

	httpsEnabled := false
	if outcome.FinalURL != nil {
		httpsEnabled = strings.EqualFold(outcome.FinalURL.Scheme, "https")
	}

	server := h.Get(headerServer)
	elapsedMs := outcome.Elapsed.Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	return scan.SecuritySignals{
		HTTPSEnabled: httpsEnabled,
		Headers: scan.HeaderFlags{
			ContentSecurityPolicy:   h.Has(headerCSP),
			StrictTransportSecurity: h.Has(headerHSTS),
			XFrameOptions:           h.Has(headerXFrameOptions),
			XContentTypeOptions:     h.Has(headerXContentTypeOptions),
			ReferrerPolicy:          h.Has(headerReferrerPolicy),
		},
		RobotsExposed:    robotsExposed,
		ServerInfoLeaked: server != "" && !strings.EqualFold(server, hiddenServerBanner),
		SSLValid:         true,
		ResponseTimeMs:   elapsedMs,
		StatusCode:       outcome.StatusCode,
		ObservedAt:       outcome.StartedAt,
	}
}
