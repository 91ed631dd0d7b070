// Package httpapi exposes the solver over HTTP and calls it from observers.
package httpapi

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	Grid  string `json:"grid"`
	Depth int    `json:"depth"`
}

// SolveResponse is the success body of POST /solve. Output holds the words
// separated by single spaces.
type SolveResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
