package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/api"
	"github.com/sahilmaurya2006/website-security-scanner/internal/checker"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	"github.com/sahilmaurya2006/website-security-scanner/internal/report"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a single website and print its security report",
	Example: `  secscan scan example.com
  secscan scan https://example.com --json
  secscan scan example.com --pdf report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		pdfPath, _ := cmd.Flags().GetString("pdf")

		scanner := checker.NewScanner(app.Logger.Named("scanner"))
		return runScan(cmd, scanner, args[0], asJSON, pdfPath)
	},
}

func init() {
	scanCmd.Flags().Bool("json", false, "Print the full result as JSON")
	scanCmd.Flags().String("pdf", "", "Write a PDF report to this path")
}

func runScan(cmd *cobra.Command, scanner api.Scanner, target string, asJSON bool, pdfPath string) error {
	out := cmd.OutOrStdout()

	result, err := scanner.Scan(cmd.Context(), target)
	if err != nil {
		_, msg := api.DescribeFailure(err)
		var fetchErr *checker.FetchError
		if errors.As(err, &fetchErr) {
			return fmt.Errorf("%s: %s (%s)", msg, fetchErr.URL, fetchErr.Detail)
		}
		return fmt.Errorf("%s: %w", msg, err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printSummary(out, result)
	}

	if pdfPath != "" {
		if err := writePDFReport(pdfPath, result); err != nil {
			return err
		}
		if !asJSON {
			fmt.Fprintf(out, "\n%s PDF report written to %s\n", colorSuccess("✓"), pdfPath)
		}
	}
	return nil
}

func printSummary(out io.Writer, r *scan.Result) {
	fmt.Fprintf(out, "%s %s\n", colorBold("Security scan:"), r.URL)
	fmt.Fprintf(out, "  Score:  %d/100   Grade: %s   Risk: %s\n", r.Score, formatGrade(r.Grade), formatRisk(r.RiskLevel))
	fmt.Fprintf(out, "  Status: %d   Response time: %d ms   Scanned: %s\n",
		r.StatusCode, r.ResponseTime, r.Timestamp.Local().Format(time.RFC1123))

	fmt.Fprintf(out, "\n%s %d/%d passed\n", colorBold("Checks:"), r.Summary.PassedChecks, r.Summary.TotalChecks)
	for _, entry := range r.Checks {
		line := fmt.Sprintf("  [%s] %s", formatCheckStatus(entry.Value.Passed), entry.Value.Label)
		if category, ok := r.OWASP.Get(entry.Key); ok && !entry.Value.Passed {
			line += fmt.Sprintf(" (%s)", category.ID)
		}
		fmt.Fprintln(out, line)
	}

	if len(r.Recommendations) == 0 {
		fmt.Fprintf(out, "\n%s No recommendations\n", colorSuccess("✓"))
		return
	}
	fmt.Fprintf(out, "\n%s\n", colorBold("Recommendations:"))
	for i, rec := range r.Recommendations {
		fmt.Fprintf(out, "  %d. [%s] %s\n", i+1, formatSeverity(rec.Severity), rec.Issue)
		fmt.Fprintf(out, "     Fix: %s\n", rec.Fix)
	}
}

// writePDFReport renders into a temp file beside path and renames it, so a
// failed render never leaves a truncated report behind.
func writePDFReport(path string, r *scan.Result) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".secscan-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := report.NewPDFRenderer().Render(tmp, *r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
