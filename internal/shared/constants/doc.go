// Package constants centralizes the fixed limits of a scan: network timeouts,
// redirect policy, the scanner's user agent and history defaults.
//
// The fetch timeouts and redirect limit are part of the scan contract and are
// deliberately not exposed through configuration.
package constants
