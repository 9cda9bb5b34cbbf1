package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/aggregator"
	"github.com/nao1215/pagescore/internal/log"
)

// Messages returned to clients.
const (
	HealthMessage         = "Website Performance Checker API is running"
	MsgInvalidBody        = "invalid request body"
	MsgURLRequired        = "URL is required"
	MsgAPIKeyMissing      = "API key not configured"
	MsgUpstreamRejected   = "Failed to fetch PageSpeed data. Please check if the URL is valid."
	MsgRequestCancelled   = "request cancelled"
	MsgNotFound           = "not found"
	MsgMethodNotAllowed   = "method not allowed"
	maxRequestBodyBytes   = 1 << 20
	statusClientCancelled = 499
)

// ScoreRequest is the body of POST /sendUrl.
type ScoreRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, messageResponse{Message: HealthMessage})
}

func (s *Server) handleSendURL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.metrics.ObserveEvaluation(aggregator.OutcomeInvalidInput)
		jsonErr(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	done := s.metrics.TrackInFlight()
	result, err := s.evaluator.Evaluate(r.Context(), req.URL)
	done()

	outcome := aggregator.Classify(err)
	s.metrics.ObserveEvaluation(outcome)

	switch outcome {
	case aggregator.OutcomeSuccess:
		writeScoreResult(w, result)
	case aggregator.OutcomeConfiguration:
		s.logger.Error("evaluation refused: no API key configured")
		jsonErr(w, http.StatusInternalServerError, MsgAPIKeyMissing)
	case aggregator.OutcomeInvalidInput:
		jsonErr(w, http.StatusBadRequest, MsgURLRequired)
	case aggregator.OutcomeUpstreamRejected:
		s.logger.Warn("scoring API rejected the URL", "url", req.URL, "error", err)
		jsonErr(w, http.StatusBadRequest, MsgUpstreamRejected)
	case aggregator.OutcomeCancelled:
		jsonErr(w, statusClientCancelled, MsgRequestCancelled)
	default:
		s.logger.Error("evaluation failed", "url", req.URL, "error", err)
		jsonErr(w, http.StatusInternalServerError, log.Redact(err.Error()))
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	jsonErr(w, http.StatusNotFound, MsgNotFound)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	jsonErr(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
