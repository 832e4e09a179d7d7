package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sahilmaurya2006/website-security-scanner/internal/api/middleware"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
	"github.com/sahilmaurya2006/website-security-scanner/internal/shared/constants"
	"go.uber.org/zap"
)

// Scanner evaluates a single target URL.
type Scanner interface {
	Scan(ctx context.Context, target string) (*scan.Result, error)
}

// History stores completed scans.
type History interface {
	Submit(result scan.Result) string
	List() []scan.Result
	Get(id string) (scan.Result, error)
	Clear() int
	Subscribe() (<-chan scan.Result, func())
}

// Renderer turns a stored scan into a downloadable document.
type Renderer interface {
	Render(w io.Writer, result scan.Result) error
}

type Config struct {
	Scanner     Scanner
	History     History
	Renderer    Renderer
	Logger      *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = allow all)
	RateLimit   int      // Requests per second per client IP (0 = disabled)
	RateBurst   int      // Burst size for rate limiter
	// TrustProxy keys the rate limiter on the first X-Forwarded-For hop.
	// Enable only behind a proxy that overwrites the header.
	TrustProxy bool
	// MaxBodyBytes caps request bodies; zero uses constants.MaxRequestBodyBytes.
	MaxBodyBytes int64
}

type Server struct {
	cfg       Config
	mux       *http.ServeMux
	handler   http.Handler
	limiters  *rateLimiterMap
	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = constants.MaxRequestBodyBytes
	}
	srv := &Server{
		cfg:  cfg,
		mux:  http.NewServeMux(),
		done: make(chan struct{}),
	}
	if cfg.RateLimit > 0 {
		srv.limiters = newRateLimiterMap()
	}
	srv.routes()
	// RequestID -> Logging -> RateLimit -> CORS -> routes
	srv.handler = middleware.RequestID(srv.withLogging(srv.withRateLimit(srv.withCORS(srv.mux))))
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close ends open event streams and stops background work. It is safe to
// call more than once; register it with http.Server.RegisterOnShutdown so
// streams do not hold up a graceful shutdown.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.limiters != nil {
			s.limiters.stop()
		}
	})
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /history", s.handleHistory)
	s.mux.HandleFunc("GET /history/stream", s.handleHistoryStream)
	s.mux.HandleFunc("POST /clear-history", s.handleClearHistory)
	s.mux.HandleFunc("GET /report/{id}/pdf", s.handleReportPDF)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowOrigin := "*"
		if len(s.cfg.CORSOrigins) > 0 {
			allowOrigin = ""
			for _, allowedOrigin := range s.cfg.CORSOrigins {
				if allowedOrigin == origin || allowedOrigin == "*" {
					allowOrigin = origin
					break
				}
			}
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")
			if allowOrigin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		s.cfg.Logger.Info("http_request",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.Int64("bytes", lrw.bytesWritten),
		)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += int64(n)
	return n, err
}

// Flush lets streaming handlers see through the wrapper.
func (lrw *loggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (lrw *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return lrw.ResponseWriter
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()

	// 5xx details stay in the server log
	if status >= 500 {
		s.requestLogger(r).Error("internal_server_error",
			zap.Error(err),
			zap.Int("status", status),
		)
		msg = "internal server error"
	}

	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// requestLogger creates a logger with request context (request ID, method, path)
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return s.cfg.Logger.With(
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) writeStreamChunk(w http.ResponseWriter, data []byte) bool {
	if _, err := w.Write(data); err != nil {
		s.cfg.Logger.Error("failed to write stream chunk", zap.Error(err))
		return false
	}
	return true
}

var errStreamingUnsupported = errors.New("streaming unsupported")
