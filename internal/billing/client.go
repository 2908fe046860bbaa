// Package billing speaks the fixed JSON contract of the external billing
// provider. Only the two calls the app needs are wrapped; the provider's
// internals are out of scope.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type PortalSession struct {
	URL string `json:"url"`
}

type Subscription struct {
	Active    bool       `json:"active"`
	Plan      string     `json:"plan,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Client defines the billing provider surface the handlers depend on.
type Client interface {
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error)
	VerifySubscription(ctx context.Context, customerID string) (*Subscription, error)
}

// HTTPClient talks to the provider's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error) {
	var out PortalSession
	err := c.post(ctx, "/v1/portal/sessions", map[string]string{
		"customer_id": customerID,
		"return_url":  returnURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifySubscription(ctx context.Context, customerID string) (*Subscription, error) {
	var out Subscription
	err := c.post(ctx, "/v1/subscriptions/verify", map[string]string{
		"customer_id": customerID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("billing api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return fmt.Errorf("billing api: %s", apiErr.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
