package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// CreateApplicant registers an applicant at levelName. A 409 means one already
// exists for the external user id; see GetApplicantByExternalID.
func (c *Client) CreateApplicant(ctx context.Context, levelName string, in CreateApplicantRequest) (*Applicant, error) {
	var out Applicant
	err := c.do(ctx, call{
		op:     "create_applicant",
		method: http.MethodPost,
		path:   "/resources/applicants",
		query:  url.Values{"levelName": {levelName}},
		body:   in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetApplicant(ctx context.Context, applicantID string) (*Applicant, error) {
	var out Applicant
	err := c.do(ctx, call{
		op:     "get_applicant",
		method: http.MethodGet,
		path:   "/resources/applicants/" + url.PathEscape(applicantID) + "/one",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetApplicantByExternalID(ctx context.Context, externalUserID string) (*Applicant, error) {
	var out Applicant
	err := c.do(ctx, call{
		op:     "get_applicant_by_external_id",
		method: http.MethodGet,
		path:   "/resources/applicants/-;externalUserId=" + url.PathEscape(externalUserID) + "/one",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReviewStatus fetches the current review state, keeping the raw body.
func (c *Client) GetReviewStatus(ctx context.Context, applicantID string) (*ReviewStatus, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		op:     "get_review_status",
		method: http.MethodGet,
		path:   "/resources/applicants/" + url.PathEscape(applicantID) + "/status",
	}, &raw)
	if err != nil {
		return nil, err
	}
	var out ReviewStatus
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, NewProviderError(ErrorBadData, "get_review_status", "decode review status", err)
	}
	var result struct {
		ReviewResult json.RawMessage `json:"reviewResult"`
	}
	_ = json.Unmarshal(raw, &result)
	out.Raw = raw
	out.ResultRaw = result.ReviewResult
	return &out, nil
}

// IssueAccessToken requests a fresh SDK token for the external user id.
func (c *Client) IssueAccessToken(ctx context.Context, externalUserID, levelName string, ttl time.Duration) (*AccessToken, error) {
	var out AccessToken
	err := c.do(ctx, call{
		op:     "issue_access_token",
		method: http.MethodPost,
		path:   "/resources/accessTokens",
		query: url.Values{
			"userId":    {externalUserID},
			"levelName": {levelName},
			"ttlInSecs": {strconv.Itoa(int(ttl.Seconds()))},
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, NewProviderError(ErrorBadData, "issue_access_token", "empty token in response", nil)
	}
	return &out, nil
}

// ResetApplicant asks the provider to discard its prior decision.
func (c *Client) ResetApplicant(ctx context.Context, applicantID string) error {
	return c.do(ctx, call{
		op:     "reset_applicant",
		method: http.MethodPost,
		path:   "/resources/applicants/" + url.PathEscape(applicantID) + "/reset",
	}, nil)
}

// GetDocuments returns the required-documents status verbatim.
func (c *Client) GetDocuments(ctx context.Context, applicantID string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		op:     "get_documents",
		method: http.MethodGet,
		path:   "/resources/applicants/" + url.PathEscape(applicantID) + "/requiredIdDocsStatus",
	}, &raw)
	return raw, err
}

// GetCheckResults returns the latest check results verbatim.
func (c *Client) GetCheckResults(ctx context.Context, applicantID string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		op:     "get_check_results",
		method: http.MethodGet,
		path:   "/resources/checks/latest",
		query:  url.Values{"applicantId": {applicantID}},
	}, &raw)
	return raw, err
}

func (c *Client) ListApplicants(ctx context.Context, p ListParams) (*ApplicantPage, error) {
	q := url.Values{}
	setInt(q, "offset", p.Offset)
	setInt(q, "limit", p.Limit)
	if !p.CreatedFrom.IsZero() {
		q.Set("createdAtFrom", p.CreatedFrom.UTC().Format(dateLayout))
	}
	if !p.CreatedTo.IsZero() {
		q.Set("createdAtTo", p.CreatedTo.UTC().Format(dateLayout))
	}
	return c.page(ctx, call{op: "list_applicants", method: http.MethodGet, path: "/resources/applicants", query: q})
}

func (c *Client) SearchApplicants(ctx context.Context, p SearchParams) (*ApplicantPage, error) {
	q := url.Values{}
	if p.Email != "" {
		q.Set("email", p.Email)
	}
	if p.Phone != "" {
		q.Set("phone", p.Phone)
	}
	if len(q) == 0 {
		return nil, NewProviderError(ErrorBadData, "search_applicants", "email or phone is required", nil)
	}
	return c.page(ctx, call{op: "search_applicants", method: http.MethodGet, path: "/resources/applicants/-/search", query: q})
}

// GetStatistics returns aggregate review statistics for [from, to] verbatim.
func (c *Client) GetStatistics(ctx context.Context, from, to time.Time) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		op:     "get_statistics",
		method: http.MethodGet,
		path:   "/resources/stats/applicants",
		query: url.Values{
			"from": {from.UTC().Format(dateLayout)},
			"to":   {to.UTC().Format(dateLayout)},
		},
	}, &raw)
	return raw, err
}

// GetWebhookLogs returns webhook delivery attempts verbatim.
func (c *Client) GetWebhookLogs(ctx context.Context, p WebhookLogParams) (json.RawMessage, error) {
	q := url.Values{}
	if p.ApplicantID != "" {
		q.Set("applicantId", p.ApplicantID)
	}
	setInt(q, "offset", p.Offset)
	setInt(q, "limit", p.Limit)
	var raw json.RawMessage
	err := c.do(ctx, call{op: "get_webhook_logs", method: http.MethodGet, path: "/resources/webhooks/logs", query: q}, &raw)
	return raw, err
}

// VerifyWebhookSignature checks a webhook digest. See VerifySignature.
func (c *Client) VerifyWebhookSignature(payload []byte, signature, webhookSecret string) bool {
	return VerifySignature(payload, signature, webhookSecret)
}

func (c *Client) page(ctx context.Context, req call) (*ApplicantPage, error) {
	var out struct {
		List ApplicantPage `json:"list"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.List.Items == nil {
		out.List.Items = []Applicant{}
	}
	return &out.List, nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}
