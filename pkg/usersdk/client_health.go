package usersdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Livez checks the liveness of the service.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks readiness. A degraded service answers 503 with the same body,
// so the response is returned together with an error in that case.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var out HealthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &out, fmt.Errorf("service not ready: %s", out.Status)
	}
	return &out, nil
}
