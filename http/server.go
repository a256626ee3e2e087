package http

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sitesignal/sitesignal"
	"github.com/sitesignal/sitesignal/pipeline"
)

// maxRequestBody bounds the scrape request payload.
const maxRequestBody = 1 << 16

// Server exposes the scrape pipeline over HTTP. A single shared secret
// authenticates callers; everything else is delegated to the Fetcher and
// Scraper.
type Server struct {
	Secret  string
	Fetcher sitesignal.Fetcher
	Scraper sitesignal.Scraper
	Logger  *slog.Logger
}

// scrapeRequest is the POST /v1/scrape payload.
type scrapeRequest struct {
	URL string `json:"url"`
}

// errorResponse is the JSON body for non-200 responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/scrape", s.handleScrape)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	requestID := uuid.NewString()
	logger := s.logger().With("request_id", requestID)

	if !s.authorized(r) {
		s.writeError(w, http.StatusUnauthorized, "invalid or missing secret")
		logger.Warn("scrape rejected", "status", http.StatusUnauthorized)
		return
	}

	var req scrapeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be JSON: {\"url\": \"...\"}")
		return
	}
	if err := validateTargetURL(req.URL); err != nil {
		s.writeError(w, http.StatusBadRequest, sitesignal.ErrorMessage(err))
		return
	}

	html, err := s.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		// An unreachable or failing target is the caller's problem.
		s.writeError(w, http.StatusBadRequest, sitesignal.ErrorMessage(err))
		logger.Info("scrape failed", "url", req.URL, "stage", "fetch", "err", err)
		return
	}

	result, err := s.Scraper.Scrape(r.Context(), &sitesignal.RawPage{URL: req.URL, HTML: html})
	if err != nil {
		status := http.StatusInternalServerError
		if sitesignal.ErrorCode(err) == sitesignal.EINVALID {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, sitesignal.ErrorMessage(err))
		logger.Info("scrape failed", "url", req.URL, "stage", "pipeline", "err", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Hash", pipeline.Fingerprint(html))
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("response encoding", "err", err)
		return
	}

	logger.Info("scrape completed",
		"url", req.URL,
		"duration", time.Since(begin),
	)
}

// authorized compares the Authorization header against the shared secret
// in constant time. A server without a configured secret accepts nothing.
func (s *Server) authorized(r *http.Request) bool {
	if s.Secret == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(header), []byte(s.Secret)) == 1
}

func validateTargetURL(raw string) error {
	if raw == "" {
		return sitesignal.Errorf(sitesignal.EINVALID, "url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return sitesignal.Errorf(sitesignal.EINVALID, "invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return sitesignal.Errorf(sitesignal.EINVALID, "url scheme must be http or https")
	}
	if u.Host == "" {
		return sitesignal.Errorf(sitesignal.EINVALID, "url host is required")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
