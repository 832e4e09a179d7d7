package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sahilmaurya2006/website-security-scanner/internal/checker"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	"github.com/sahilmaurya2006/website-security-scanner/internal/report"
	sharedErrors "github.com/sahilmaurya2006/website-security-scanner/internal/shared/errors"
	"go.uber.org/zap"
)

const (
	msgURLRequired   = "URL is required and must be a string"
	msgInvalidURL    = "Invalid URL format. Example: https://example.com"
	msgScanNotFound  = "Scan not found"
	msgUnreachable   = "Connection refused - website is unreachable"
	msgDomainMissing = "Domain not found - check URL validity"
	msgTimeout       = "Request timeout - website is slow or unreachable"
	msgTLS           = "SSL/TLS certificate error"
	msgFetchFailed   = "Unable to reach website"
)

// StatusTLSCertificateError is the non-standard status used for TLS
// handshake and certificate failures.
const StatusTLSCertificateError = 495

// scanResponse is a scan result as returned by /scan and /history.
type scanResponse struct {
	Success bool `json:"success"`
	scan.Result
}

type scanFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	URL     string `json:"url"`
	Details string `json:"details"`
}

type scanRequest struct {
	URL interface{} `json:"url"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "running",
		"message": "Website Security Scanner API v1.0",
		"endpoints": map[string]string{
			"scan":    "POST /scan",
			"history": "GET /history",
			"stream":  "GET /history/stream",
			"clear":   "POST /clear-history",
			"report":  "GET /report/{id}/pdf",
		},
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New(msgURLRequired))
		return
	}
	target, ok := req.URL.(string)
	if !ok || strings.TrimSpace(target) == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New(msgURLRequired))
		return
	}

	result, err := s.cfg.Scanner.Scan(r.Context(), strings.TrimSpace(target))
	if err != nil {
		s.writeScanFailure(w, r, target, err)
		return
	}

	result.ID = s.cfg.History.Submit(*result)
	writeJSON(w, http.StatusOK, scanResponse{Success: true, Result: *result})
}

// DescribeFailure maps a failed scan onto the HTTP status and the message
// shown to the caller.
func DescribeFailure(err error) (status int, message string) {
	switch {
	case errors.Is(err, sharedErrors.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidURL
	case errors.Is(err, sharedErrors.ErrUnreachable):
		return http.StatusServiceUnavailable, msgUnreachable
	case errors.Is(err, sharedErrors.ErrDomainNotFound):
		return http.StatusNotFound, msgDomainMissing
	case errors.Is(err, sharedErrors.ErrTimeout):
		return http.StatusGatewayTimeout, msgTimeout
	case errors.Is(err, sharedErrors.ErrTLS):
		return StatusTLSCertificateError, msgTLS
	default:
		return http.StatusInternalServerError, msgFetchFailed
	}
}

func (s *Server) writeScanFailure(w http.ResponseWriter, r *http.Request, target string, err error) {
	status, msg := DescribeFailure(err)
	if status == http.StatusBadRequest {
		s.writeError(w, r, status, errors.New(msg))
		return
	}

	failure := scanFailure{
		Success: false,
		Error:   msg,
		URL:     checker.NormalizeURL(target),
		Details: err.Error(),
	}
	var fetchErr *checker.FetchError
	if errors.As(err, &fetchErr) {
		failure.URL = fetchErr.URL
		failure.Details = fetchErr.Detail
	}

	logFailure := s.requestLogger(r).Error
	if sharedErrors.IsFetchFailure(err) {
		logFailure = s.requestLogger(r).Warn
	}
	logFailure("scan_request_failed",
		zap.String("url", failure.URL),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, failure)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	results := s.cfg.History.List()
	history := make([]scanResponse, 0, len(results))
	for _, res := range results {
		history = append(history, scanResponse{Success: true, Result: res})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(history),
		"history": history,
	})
}

func (s *Server) handleHistoryStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, errStreamingUnsupported)
		return
	}
	updates, unsubscribe := s.cfg.History.Subscribe()
	defer unsubscribe()

	// Subscribed before the headers go out, so a client that has seen them
	// cannot miss a submission.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	ctx := r.Context()
	for {
		select {
		case result, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(scanResponse{Success: true, Result: result})
			if err != nil {
				s.cfg.Logger.Error("failed to marshal scan", zap.Error(err))
				continue
			}
			if !s.writeStreamChunk(w, []byte("event: scan\nid: "+result.ID+"\ndata: ")) {
				return
			}
			if !s.writeStreamChunk(w, payload) {
				return
			}
			if !s.writeStreamChunk(w, []byte("\n\n")) {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	cleared := s.cfg.History.Clear()
	s.requestLogger(r).Info("history_cleared", zap.Int("count", cleared))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Cleared %d scan records", cleared),
	})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := s.cfg.History.Get(id)
	if err != nil {
		if errors.Is(err, sharedErrors.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, errors.New(msgScanNotFound))
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	// Render fully before committing headers so a layout failure still
	// yields a clean JSON error.
	var buf bytes.Buffer
	if err := s.cfg.Renderer.Render(&buf, result); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(id)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
