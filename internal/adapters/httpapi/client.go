package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Solver = (*Client)(nil)

// Client implements ports.Solver against a remote Server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL. A nil hc uses
// http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Solve posts the grid and depth and parses the returned words.
func (c *Client) Solve(ctx context.Context, grid string, depth int) ([]string, error) {
	body, err := json.Marshal(SolveRequest{Grid: grid, Depth: depth})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode solve request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrNetwork, err), "failed to build solve request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrNetwork, err), "solve request failed"), "url", c.baseURL)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes*16))
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrNetwork, err), "failed to read solve response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp.StatusCode, data)
	}

	var out SolveResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrNetwork, err), "malformed solve response"), "status", resp.StatusCode)
	}
	return domain.ParseWords(out.Output), nil
}

func responseError(status int, data []byte) error {
	var cause error
	switch {
	case status == http.StatusBadRequest:
		cause = domain.ErrValidation
	case status == http.StatusGatewayTimeout:
		cause = domain.ErrSolverTimeout
	case status >= http.StatusInternalServerError:
		cause = domain.ErrSolverExecution
	default:
		cause = domain.ErrNetwork
	}

	msg := "server rejected solve request"
	var body ErrorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return zerr.With(zerr.Wrap(cause, msg), "status", status)
}
