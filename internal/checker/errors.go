package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"

	sharedErrors "github.com/sahilmaurya2006/website-security-scanner/internal/shared/errors"
)

// FetchError is a transport failure against the target site. Kind is one of
// the fetch sentinels in internal/shared/errors, so callers match it with
// errors.Is.
type FetchError struct {
	Kind   error
	URL    string
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.URL, e.Detail)
}

// Unwrap exposes both the classification and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newFetchError(target string, err error) *FetchError {
	return &FetchError{
		Kind:   classifyFetchError(err),
		URL:    target,
		Detail: err.Error(),
		Err:    err,
	}
}

// classifyFetchError maps a transport error onto the fetch taxonomy.
func classifyFetchError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return sharedErrors.ErrTimeout
		}
		return sharedErrors.ErrDomainNotFound
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return sharedErrors.ErrUnreachable
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return sharedErrors.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return sharedErrors.ErrTimeout
	}

	if isTLSError(err) {
		return sharedErrors.ErrTLS
	}

	return sharedErrors.ErrFetchFailed
}

func isTLSError(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
