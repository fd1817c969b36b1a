package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext carries per-scenario state: the target server, credentials and
// the last response.
type TestContext struct {
	BaseURL       string
	AdminToken    string
	WebhookSecret string
	HTTPClient    *http.Client

	LastStatus int
	LastBody   []byte
	lastJSON   map[string]interface{}
}

// NewTestContext reads the target from KYC_E2E_BASE_URL, KYC_E2E_ADMIN_TOKEN
// and KYC_E2E_WEBHOOK_SECRET.
func NewTestContext() *TestContext {
	base := os.Getenv("KYC_E2E_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &TestContext{
		BaseURL:       strings.TrimRight(base, "/"),
		AdminToken:    os.Getenv("KYC_E2E_ADMIN_TOKEN"),
		WebhookSecret: os.Getenv("KYC_E2E_WEBHOOK_SECRET"),
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears response state between scenarios.
func (tc *TestContext) Reset() {
	tc.LastStatus = 0
	tc.LastBody = nil
	tc.lastJSON = nil
}

func (tc *TestContext) GetAdminToken() string    { return tc.AdminToken }
func (tc *TestContext) GetWebhookSecret() string { return tc.WebhookSecret }

// Do sends a request with a raw body and records the response.
func (tc *TestContext) Do(method, path string, body []byte, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastStatus = resp.StatusCode
	tc.LastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastJSON = nil
	if len(tc.LastBody) > 0 {
		var parsed map[string]interface{}
		if json.Unmarshal(tc.LastBody, &parsed) == nil {
			tc.lastJSON = parsed
		}
	}
	return nil
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.Do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) POST(path string, body interface{}, headers map[string]string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tc.Do(http.MethodPost, path, raw, headers)
}

func (tc *TestContext) GetLastStatus() int { return tc.LastStatus }

// GetResponseField returns a top-level field from the last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	if tc.lastJSON == nil {
		return nil, fmt.Errorf("last response is not a JSON object: %s", string(tc.LastBody))
	}
	v, ok := tc.lastJSON[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, string(tc.LastBody))
	}
	return v, nil
}
