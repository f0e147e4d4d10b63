package api

import (
	"net/http"
	"time"

	"github.com/protovet/protovet/pkg/format"
	"github.com/protovet/protovet/pkg/httputil"
	"github.com/protovet/protovet/pkg/lint"
	"github.com/protovet/protovet/pkg/observability"
)

// lintRequest is the JSON body accepted by the validate and format
// endpoints. Multipart uploads with a "file" field are also accepted.
type lintRequest struct {
	Content string `json:"content"`
}

// formatResponse is the body returned by the format endpoint
type formatResponse struct {
	Formatted string `json:"formatted"`
}

// readContent extracts proto source from either a JSON body or a
// multipart upload. It writes the error response itself and reports
// success through the bool.
func (s *Server) readContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	if httputil.IsMultipart(r) {
		content, err := httputil.ReadUploadedFile(r, "file")
		if err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return "", false
		}
		return content, true
	}

	var req lintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return "", false
	}
	if !httputil.RequireNonEmpty(w, req.Content, "content") {
		return "", false
	}
	return req.Content, true
}

// handleValidate runs the linter over the submitted source and returns
// the full report. A structurally broken file is still a 200; only
// request-level failures produce an error status.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readContent(w, r)
	if !ok {
		return
	}

	logger := observability.FromContext(r.Context())

	var report *lint.Report
	key := cacheKey(content)
	if s.cache != nil {
		if cached, hit := s.cache.getReport(key); hit {
			report = cached
		}
	}

	if report == nil {
		start := time.Now()
		report = lint.Validate(content)
		s.observeValidation(report, time.Since(start))
		if s.cache != nil {
			s.cache.putReport(key, report)
		}
	}

	report = report.Filter(s.options)

	logger.WithFields(map[string]interface{}{
		"valid":    report.Valid,
		"errors":   len(report.Errors),
		"warnings": len(report.Warnings),
	}).Debug("Validation complete")

	httputil.WriteJSONOrError(w, http.StatusOK, report, "failed to encode report")
}

// handleFormat rewrites the submitted source into canonical layout
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readContent(w, r)
	if !ok {
		return
	}

	var formatted string
	key := cacheKey(content)
	if s.cache != nil {
		if cached, hit := s.cache.getFormat(key); hit {
			formatted = cached
			httputil.WriteJSONOrError(w, http.StatusOK, formatResponse{Formatted: formatted}, "failed to encode response")
			return
		}
	}

	start := time.Now()
	formatted = format.Format(content)
	if s.metrics != nil {
		s.metrics.FormatsTotal.Inc()
		s.metrics.FormatDuration.Observe(time.Since(start).Seconds())
	}
	if s.cache != nil {
		s.cache.putFormat(key, formatted)
	}

	httputil.WriteJSONOrError(w, http.StatusOK, formatResponse{Formatted: formatted}, "failed to encode response")
}

// handleRules returns the fixed rule catalog
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOrError(w, http.StatusOK, lint.Catalog(), "failed to encode catalog")
}

func (s *Server) observeValidation(report *lint.Report, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ValidationsTotal.Inc()
	s.metrics.ValidationDuration.Observe(elapsed.Seconds())
	for _, issue := range report.AllIssues() {
		s.metrics.IssuesTotal.WithLabelValues(issue.Rule, string(issue.Severity)).Inc()
	}
	if !report.Valid {
		s.metrics.InvalidFilesTotal.Inc()
	}
}
