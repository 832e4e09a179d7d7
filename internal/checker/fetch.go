package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	consts "github.com/sahilmaurya2006/website-security-scanner/internal/shared/constants"
)

// FetchOutcome is the raw result of a successful primary fetch. Any HTTP
// status code counts as success.
type FetchOutcome struct {
	StatusCode int
	Headers    Headers
	Elapsed    time.Duration
	FinalURL   *url.URL
	StartedAt  time.Time
}

// Fetcher performs the outbound requests of a scan.
type Fetcher struct {
	Timeout       time.Duration
	RobotsTimeout time.Duration
	MaxRedirects  int
	UserAgent     string
	// Transport overrides the HTTP transport; nil uses a fresh default
	// transport per Fetcher.
	Transport http.RoundTripper

	now func() time.Time
}

// NewFetcher returns a Fetcher with the standard scan limits.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Timeout:       consts.FetchTimeout,
		RobotsTimeout: consts.RobotsTimeout,
		MaxRedirects:  consts.MaxRedirects,
		UserAgent:     consts.UserAgent,
	}
}

func (f *Fetcher) client(timeout time.Duration) *http.Client {
	transport := f.Transport
	if transport == nil {
		transport = defaultTransport
	}
	maxRedirects := f.MaxRedirects
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

var defaultTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	TLSHandshakeTimeout: consts.FetchTimeout,
	MaxIdleConns:        100,
	IdleConnTimeout:     90 * time.Second,
}

func (f *Fetcher) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

// Fetch GETs target. The timeout is enforced through the request context, so
// a stalled server is abandoned even mid-body. Transport failures come back
// as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*FetchOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrInvalidURL, URL: target, Detail: err.Error(), Err: err}
	}
	req.Header.Set("User-Agent", f.UserAgent)

	started := f.clock()
	resp, err := f.client(f.Timeout).Do(req)
	if err != nil {
		return nil, newFetchError(target, err)
	}
	defer resp.Body.Close()

	// Drain so the elapsed time covers the full response, as a browser would
	// see it. Body errors after headers arrived do not fail the scan unless
	// the deadline fired.
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, consts.BodyDrainLimitBytes)); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, newFetchError(target, err)
		}
	}
	elapsed := f.clock().Sub(started)

	return &FetchOutcome{
		StatusCode: resp.StatusCode,
		Headers:    NewHeaders(resp.Header),
		Elapsed:    elapsed,
		FinalURL:   resp.Request.URL,
		StartedAt:  started.UTC(),
	}, nil
}

// ProbeRobots reports whether robotsURL answers 200. Every failure, network
// or status, is reported as not exposed.
func (f *Fetcher) ProbeRobots(ctx context.Context, robotsURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, f.RobotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.client(f.RobotsTimeout).Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.BodyDrainLimitBytes))

	return resp.StatusCode == http.StatusOK
}
