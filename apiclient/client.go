package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/errs"
)

// Client is a typed client for the backend's REST API: the Remote Store the
// admin draft managers commit against.
type Client struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
	logger     zerolog.Logger
}

func New(baseURL, adminToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("component", "apiclient").Logger(),
	}
}

// errorEnvelope mirrors the API's error response body
type errorEnvelope struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details string `json:"details"`
}

// do runs one JSON round trip. A transport failure comes back as a
// NETWORK_ERROR; a non-2xx response as a remote rejection carrying the
// server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	operation := method + " " + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewNetworkError(operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewNetworkError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		message := strings.TrimSpace(string(respBody))
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != "" {
			message = envelope.Error
			if envelope.Details != "" {
				message = message + ": " + envelope.Details
			}
		}
		c.logger.Warn().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Msg("Remote store rejected request")
		return errs.NewRemoteError(operation, resp.StatusCode, message)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}

	return nil
}
