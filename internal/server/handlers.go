package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/logging"
	"github.com/agbru/fibfixed/internal/service"
	"github.com/agbru/fibfixed/pkg/models"
)

// CalculateParseError represents a parameter parsing error with HTTP status.
type CalculateParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e CalculateParseError) Error() string {
	return e.Message
}

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}
	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleModes returns the list of available overflow modes.
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"modes": s.service.Modes(),
	}
	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleCalculate computes F(n) for the query parameters 'n' (required) and
// 'mode' (defaults to wrap) and returns a models.Result.
//
// Status codes: 400 for malformed or out-of-limit parameters, 422 when the
// checked mode reports an overflow, 504 when the request timeout expires.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, mode, err := parseCalculateParams(r)
	if err != nil {
		var parseErr CalculateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, r, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Calculate(ctx, mode, n)
	duration := time.Since(start)

	if err != nil {
		s.writeCalculationError(w, r, n, mode, err, duration)
		return
	}

	out := models.NewResult(res.N, res.Mode, res.Value, res.Exact, duration.String())
	out.Cached = res.Cached
	s.writeJSONResponse(w, http.StatusOK, out)
}

func (s *Server) writeCalculationError(w http.ResponseWriter, r *http.Request, n uint32, mode string, err error, duration time.Duration) {
	var unknown *fibonacci.UnknownCalculatorError
	switch {
	case errors.Is(err, service.ErrMaxValueExceeded):
		s.writeErrorResponse(w, r, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d).", s.cfg.MaxN))
	case errors.As(err, &unknown):
		s.writeErrorResponse(w, r, http.StatusBadRequest, unknown.Error())
	case apperrors.IsOverflow(err):
		s.writeJSONResponse(w, http.StatusUnprocessableEntity, models.NewErrorResult(n, mode, err, duration.String()))
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, r, http.StatusGatewayTimeout, "Calculation timed out")
	default:
		s.logger.Error("calculation failed", err,
			logging.String("mode", mode), logging.Uint32("n", n),
			logging.String("request_id", RequestIDFromContext(r.Context())))
		s.writeErrorResponse(w, r, http.StatusInternalServerError, "Calculation failed")
	}
}

// parseCalculateParams extracts and validates the calculation parameters from the request.
//
// Returns:
//   - n: The parsed Fibonacci index.
//   - mode: The canonical mode name (defaults to "wrap" if not specified).
//   - err: A CalculateParseError if validation fails, nil otherwise.
func parseCalculateParams(r *http.Request) (n uint32, mode string, err error) {
	nStr := r.URL.Query().Get("n")
	if nStr == "" {
		return 0, "", CalculateParseError{
			Message:    "Missing 'n' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	// ParseUint rejects signs, so negative input is a parse error.
	v, parseErr := strconv.ParseUint(nStr, 10, 32)
	if parseErr != nil {
		return 0, "", CalculateParseError{
			Message:    "Invalid 'n' parameter: must be an integer between 0 and 4294967295",
			StatusCode: http.StatusBadRequest,
		}
	}

	mode = r.URL.Query().Get("mode")
	if mode == "" {
		mode = fibonacci.ModeWrap
	}
	mode, modeErr := fibonacci.ParseMode(mode)
	if modeErr != nil {
		return 0, "", CalculateParseError{
			Message:    fmt.Sprintf("Invalid 'mode' parameter: %v", modeErr),
			StatusCode: http.StatusBadRequest,
		}
	}

	return uint32(v), mode, nil
}

// writeJSONResponse writes data as JSON with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	errResp := models.ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
