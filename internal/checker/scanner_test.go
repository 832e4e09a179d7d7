package checker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	sharedErrors "github.com/sahilmaurya2006/website-security-scanner/internal/shared/errors"
	"go.uber.org/zap/zaptest"
)

func testScanner(t *testing.T) *Scanner {
	t.Helper()
	return &Scanner{
		Fetcher: &Fetcher{
			Timeout:       2 * time.Second,
			RobotsTimeout: 500 * time.Millisecond,
			MaxRedirects:  5,
			UserAgent:     "SecurityScanner/1.0 (Website Security Analysis)",
		},
		Logger: zaptest.NewLogger(t),
	}
}

func hardenedSite(robots int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(robots)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Server", "hidden")
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestScanPlainHTTPSite(t *testing.T) {
	server := httptest.NewServer(hardenedSite(http.StatusOK))
	defer server.Close()

	result, err := testScanner(t).Scan(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.Signals.HTTPSEnabled {
		t.Error("Expected HTTPS disabled for a plain HTTP site")
	}
	if !result.Signals.RobotsExposed {
		t.Error("Expected robots.txt to be detected")
	}
	// every header and the TLS point, no HTTPS, minus the plain HTTP penalty
	if result.Score != 70 {
		t.Errorf("Expected score 70, got %d", result.Score)
	}
	if result.Grade != scan.GradeC || result.RiskLevel != scan.RiskMedium {
		t.Errorf("Expected grade C / MEDIUM risk, got %s / %s", result.Grade, result.RiskLevel)
	}
	if result.URL != server.URL {
		t.Errorf("Expected URL %s, got %s", server.URL, result.URL)
	}
	if result.ID != "" {
		t.Errorf("Expected scanner to leave the ID for the store, got %q", result.ID)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", result.StatusCode)
	}
}

func TestScanHTTPSSite(t *testing.T) {
	server := httptest.NewTLSServer(hardenedSite(http.StatusNotFound))
	defer server.Close()

	s := testScanner(t)
	s.Fetcher.Transport = server.Client().Transport

	result, err := s.Scan(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !result.Signals.HTTPSEnabled || result.Signals.RobotsExposed {
		t.Errorf("Unexpected signals %+v", result.Signals)
	}
	if result.Score != 100 || result.Grade != scan.GradeA || result.RiskLevel != scan.RiskLow {
		t.Errorf("Expected a perfect score, got %d %s %s", result.Score, result.Grade, result.RiskLevel)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", result.Recommendations)
	}
}

func TestScanRobotsTimeoutDoesNotFailScan(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	defer close(release)

	s := testScanner(t)
	s.Fetcher.RobotsTimeout = 50 * time.Millisecond

	result, err := s.Scan(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected robots timeout to be absorbed, got %v", err)
	}
	if result.Signals.RobotsExposed {
		t.Error("Expected robots.txt to be reported as not exposed")
	}
}

func TestScanRejectsInvalidURL(t *testing.T) {
	_, err := testScanner(t).Scan(context.Background(), "https://")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("Expected ErrInvalidURL, got %v", err)
	}
}

func TestScanReportsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	result, err := testScanner(t).Scan(context.Background(), target)
	if result != nil {
		t.Fatalf("Expected no result, got %+v", result)
	}
	if !errors.Is(err, sharedErrors.ErrUnreachable) {
		t.Fatalf("Expected ErrUnreachable, got %v", err)
	}
}
