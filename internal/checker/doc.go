// Package checker performs the network side of a website security scan.
//
// Architecture overview:
//
//   - ParseTarget normalizes caller input (bare hosts get https://) and
//     rejects anything that is not an absolute http(s) URL.
//   - Fetcher issues the primary GET and the robots.txt probe. Both carry
//     context deadlines; the primary follows at most five redirects and
//     accepts any status code. Transport failures come back as *FetchError
//     classified onto the sentinels in internal/shared/errors.
//   - ExtractSignals turns a FetchOutcome into scan.SecuritySignals without
//     further I/O.
//   - Scanner joins the two requests and hands the signals to
//     internal/scoring, returning a scan.Result ready for the history store.
//
// Limitations:
//
// sslValid is always reported true. Certificate problems surface only as
// fetch failures (ErrTLS); no chain or expiry inspection is performed.
package checker
