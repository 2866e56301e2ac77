// Package models defines the data structures fibfixed exposes to the outside
// world: the JSON record printed by the CLI with -json and returned by the
// HTTP API.
package models

// Result is the wire representation of one Fibonacci calculation.
type Result struct {
	N        uint32  `json:"n"`                // Requested index.
	Mode     string  `json:"mode"`             // Overflow mode used ("wrap", "checked", "saturate").
	Result   *uint32 `json:"result,omitempty"` // F(n) in the mode's arithmetic; absent on error.
	Bits     int     `json:"bits"`             // Width of the result type.
	Exact    bool    `json:"exact"`            // True when the value equals the mathematical F(n).
	Cached   bool    `json:"cached,omitempty"` // Served from the result cache.
	Duration string  `json:"duration"`         // Formatted execution time.
	Error    string  `json:"error,omitempty"`  // Failure message, if any.
}

// NewResult builds a Result for a successful calculation.
func NewResult(n uint32, mode string, value uint32, exact bool, duration string) Result {
	v := value
	return Result{
		N:        n,
		Mode:     mode,
		Result:   &v,
		Bits:     32,
		Exact:    exact,
		Duration: duration,
	}
}

// NewErrorResult builds a Result for a failed calculation.
func NewErrorResult(n uint32, mode string, err error, duration string) Result {
	return Result{
		N:        n,
		Mode:     mode,
		Bits:     32,
		Duration: duration,
		Error:    err.Error(),
	}
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	Error     string `json:"error"`                // Short error code or status text.
	Message   string `json:"message,omitempty"`    // Descriptive error message.
	RequestID string `json:"request_id,omitempty"` // Correlation identifier of the request.
}
