package scoring

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
)

func TestChecksInvertDisclosureSignals(t *testing.T) {
	checks := Checks(scan.SecuritySignals{RobotsExposed: true})

	robots, ok := checks.Get(scan.CheckRobotsExposed)
	if !ok || robots.Passed {
		t.Fatalf("expected robotsExposed check to fail, got %+v", robots)
	}
	server, ok := checks.Get(scan.CheckServerHiding)
	if !ok || !server.Passed {
		t.Fatalf("expected serverHiding check to pass, got %+v", server)
	}
}

func TestSummarizeCountsPassedChecks(t *testing.T) {
	s := scan.SecuritySignals{
		HTTPSEnabled: true,
		Headers:      scan.HeaderFlags{XFrameOptions: true},
		SSLValid:     true,
	}

	summary := Summarize(Checks(s))

	// https + xFrameOptions + robots hidden + server hidden
	if summary.TotalChecks != 8 || summary.PassedChecks != 4 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestEvaluateAssemblesResult(t *testing.T) {
	observed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	s := scan.SecuritySignals{
		HTTPSEnabled:     true,
		SSLValid:         true,
		ResponseTimeMs:   42,
		StatusCode:       200,
		ObservedAt:       observed,
		ServerInfoLeaked: true,
	}

	result := Evaluate("https://example.com", s)

	if result.ID != "" {
		t.Fatalf("expected no id before submission, got %q", result.ID)
	}
	if result.Score != 25 || result.Grade != scan.GradeF || result.RiskLevel != scan.RiskHigh {
		t.Fatalf("unexpected scoring %d/%s/%s", result.Score, result.Grade, result.RiskLevel)
	}
	if result.ResponseTime != 42 || result.StatusCode != 200 || !result.Timestamp.Equal(observed) {
		t.Fatalf("transport fields not copied: %+v", result)
	}
	if len(result.Recommendations) != 6 {
		t.Fatalf("expected 6 recommendations, got %v", issues(result.Recommendations))
	}
	if len(result.OWASP) != len(result.Checks) {
		t.Fatalf("expected an OWASP entry per check")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"checks":{"https":{"passed":true`) {
		t.Fatalf("checks not serialised in catalogue order: %s", body)
	}
	if !strings.Contains(body, `"riskLevel":"HIGH"`) {
		t.Fatalf("expected clean risk level enum: %s", body)
	}
}
