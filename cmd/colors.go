package cmd

import (
	"github.com/fatih/color"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

func formatCheckStatus(passed bool) string {
	if passed {
		return colorSuccess("PASS")
	}
	return colorError("FAIL")
}

func formatGrade(g scan.Grade) string {
	switch g {
	case scan.GradeA, scan.GradeB:
		return colorSuccess(string(g))
	case scan.GradeC, scan.GradeD:
		return colorWarn(string(g))
	default:
		return colorError(string(g))
	}
}

func formatRisk(r scan.RiskLevel) string {
	switch r {
	case scan.RiskLow:
		return colorSuccess(string(r))
	case scan.RiskMedium:
		return colorWarn(string(r))
	default:
		return colorError(string(r))
	}
}

func formatSeverity(s scan.Severity) string {
	switch s {
	case scan.SeverityHigh:
		return colorError(string(s))
	case scan.SeverityMedium:
		return colorWarn(string(s))
	default:
		return colorInfo(string(s))
	}
}
