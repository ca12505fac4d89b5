// Package algebra routes symbolic-math commands (solve, differentiate,
// integrate, simplify, limit) to the external algebra service.
package algebra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Operation names understood by the algebra service.
const (
	OpSolve         = "solve"
	OpDifferentiate = "differentiate"
	OpIntegrate     = "integrate"
	OpSimplify      = "simplify"
	OpLimit         = "limit"
)

// Engine is the narrow contract for the symbolic-algebra collaborator.
type Engine interface {
	// Eval runs one symbolic operation. For OpSolve, lhs and rhs carry the
	// equation sides and expr is unused; for everything else expr carries
	// the expression and lhs/rhs are empty.
	Eval(ctx context.Context, op, expr, lhs, rhs string) (string, error)
}

// Client calls the SymPy-backed sidecar service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an algebra service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// evalRequest is the request body for the sidecar's /eval endpoint.
type evalRequest struct {
	Op     string `json:"op"`
	Expr   string `json:"expr,omitempty"`
	LHS    string `json:"lhs,omitempty"`
	RHS    string `json:"rhs,omitempty"`
	Symbol string `json:"symbol"`
}

// evalResponse is the sidecar's reply.
type evalResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Eval implements Engine.
func (c *Client) Eval(ctx context.Context, op, expr, lhs, rhs string) (string, error) {
	body, err := json.Marshal(evalRequest{
		Op:     op,
		Expr:   expr,
		LHS:    lhs,
		RHS:    rhs,
		Symbol: "x",
	})
	if err != nil {
		return "", fmt.Errorf("algebra: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/eval", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("algebra: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("algebra: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("algebra: %s: unexpected status %d", op, resp.StatusCode)
	}

	var result evalResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("algebra: decode: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("algebra: %s: %s", op, result.Error)
	}

	return result.Result, nil
}
