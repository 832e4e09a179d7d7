package scan

import "time"

// Check keys, in catalogue order.
const (
	CheckHTTPS               = "https"
	CheckCSP                 = "csp"
	CheckXFrameOptions       = "xFrameOptions"
	CheckXContentTypeOptions = "xContentTypeOptions"
	CheckHSTS                = "hsts"
	CheckReferrerPolicy      = "referrerPolicy"
	CheckRobotsExposed       = "robotsExposed"
	CheckServerHiding        = "serverHiding"
)

// CheckOutcome is the pass/fail state of one check.
type CheckOutcome struct {
	Passed      bool   `json:"passed"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Checks holds the check outcomes keyed by check name.
type Checks = OrderedMap[CheckOutcome]

// OWASPCategory links a check to an OWASP Top 10 category.
type OWASPCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OWASPMapping associates check names with OWASP categories.
type OWASPMapping = OrderedMap[OWASPCategory]

// Recommendation is one remediation entry.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Issue    string   `json:"issue"`
	Fix      string   `json:"fix"`
}

// Summary counts passed checks.
type Summary struct {
	TotalChecks  int `json:"total_checks"`
	PassedChecks int `json:"passed_checks"`
}

// Result is a completed scan. The store assigns ID on submission; nothing
// else changes a Result after it is built.
type Result struct {
	ID              string           `json:"id"`
	URL             string           `json:"url"`
	Score           int              `json:"securityScore"`
	Grade           Grade            `json:"grade"`
	RiskLevel       RiskLevel        `json:"riskLevel"`
	Timestamp       time.Time        `json:"timestamp"`
	ResponseTime    int64            `json:"responseTime"`
	StatusCode      int              `json:"statusCode"`
	Checks          Checks           `json:"checks"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
	OWASP           OWASPMapping     `json:"owasp"`
	Signals         SecuritySignals  `json:"signals"`
}
