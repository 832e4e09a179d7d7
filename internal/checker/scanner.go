package checker

import (
	"context"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	"github.com/sahilmaurya2006/website-security-scanner/internal/scoring"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Scanner evaluates the security posture of a single URL.
type Scanner struct {
	Fetcher *Fetcher
	Logger  *zap.Logger
}

// NewScanner returns a Scanner using the standard fetch limits.
func NewScanner(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{Fetcher: NewFetcher(), Logger: logger}
}

// Scan normalizes target, fetches it alongside its robots.txt and evaluates
// the response. Errors are either ErrInvalidURL or a *FetchError for the
// primary request; robots.txt problems never surface. Nothing is retried.
func (s *Scanner) Scan(ctx context.Context, target string) (*scan.Result, error) {
	info, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	logger := s.logger().With(zap.String("url", info.FullURL))

	var (
		outcome       *FetchOutcome
		fetchErr      error
		robotsExposed bool
		wg            conc.WaitGroup
	)
	start := time.Now()

	wg.Go(func() {
		outcome, fetchErr = s.Fetcher.Fetch(ctx, info.FullURL)
	})
	// The probe gets its own deadline and outcome; it cannot cancel or fail
	// the primary request.
	wg.Go(func() {
		robotsExposed = s.Fetcher.ProbeRobots(ctx, info.RobotsURL())
	})
	wg.Wait()

	if fetchErr != nil {
		logger.Warn("scan_failed",
			zap.Error(fetchErr),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fetchErr
	}

	signals := ExtractSignals(*outcome, robotsExposed)
	result := scoring.Evaluate(info.FullURL, signals)

	logger.Info("scan_completed",
		zap.Int("status", signals.StatusCode),
		zap.Int("score", result.Score),
		zap.String("grade", string(result.Grade)),
		zap.Bool("robots_exposed", robotsExposed),
		zap.Duration("duration", time.Since(start)),
	)
	return &result, nil
}

func (s *Scanner) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
