package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kycgate/pkg/platform/circuit"
)

const (
	testAppToken = "app-token"
	testSecret   = "secret-key"
)

// fakeProvider verifies request signatures like the real API and replays a
// scripted sequence of responses per path.
type fakeProvider struct {
	mu        sync.Mutex
	t         *testing.T
	responses map[string][]fakeResponse
	requests  []recordedRequest
}

type fakeResponse struct {
	status int
	body   string
	delay  time.Duration
}

type recordedRequest struct {
	method     string
	requestURI string
	body       []byte
	ts         string
}

func (f *fakeProvider) script(path string, rs ...fakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = append(f.responses[path], rs...)
}

func (f *fakeProvider) hits() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	ts := r.Header.Get(HeaderTimestamp)
	tsInt, _ := strconv.ParseInt(ts, 10, 64)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{method: r.Method, requestURI: r.RequestURI, body: body, ts: ts})
	queue := f.responses[r.URL.Path]
	var resp fakeResponse
	if len(queue) > 0 {
		resp = queue[0]
		if len(queue) > 1 {
			f.responses[r.URL.Path] = queue[1:]
		}
	} else {
		resp = fakeResponse{status: http.StatusNotFound, body: `{"description":"no route"}`}
	}
	f.mu.Unlock()

	if r.Header.Get(HeaderAppToken) != testAppToken ||
		r.Header.Get(HeaderSignature) != SignRequest(testSecret, tsInt, r.Method, r.RequestURI, body) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"description":"signature mismatch"}`))
		return
	}
	if resp.delay > 0 {
		time.Sleep(resp.delay)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

type ClientSuite struct {
	suite.Suite
	fake    *fakeProvider
	server  *httptest.Server
	clock   atomic.Int64
	breaker *circuit.Breaker
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = &fakeProvider{t: s.T(), responses: map[string][]fakeResponse{}}
	s.server = httptest.NewServer(s.fake)
	s.clock.Store(1700000000)
	s.breaker = circuit.New("test", circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(1))
	s.client = New(Config{BaseURL: s.server.URL + "/", AppToken: testAppToken, SecretKey: testSecret},
		WithBreaker(s.breaker),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSleeper(func(context.Context, time.Duration) error { return nil }),
		WithClock(func() time.Time { return time.Unix(s.clock.Add(1), 0) }),
	)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestCreateApplicantSignsBodyAndQuery() {
	s.fake.script("/resources/applicants", fakeResponse{status: 201, body: `{"id":"ap_1","externalUserId":"member_u1"}`})

	app, err := s.client.CreateApplicant(context.Background(), "basic-kyc-level", CreateApplicantRequest{
		ExternalUserID: "member_u1",
		Email:          "a@example.com",
		FixedInfo:      &FixedInfo{FirstName: "A"},
	})
	s.Require().NoError(err)
	s.Equal("ap_1", app.ID)

	hits := s.fake.hits()
	s.Require().Len(hits, 1)
	s.Equal(http.MethodPost, hits[0].method)
	s.Equal("/resources/applicants?levelName=basic-kyc-level", hits[0].requestURI)
	s.JSONEq(`{"externalUserId":"member_u1","email":"a@example.com","fixedInfo":{"firstName":"A"}}`, string(hits[0].body))
}

func (s *ClientSuite) TestGetApplicantByExternalIDPath() {
	s.fake.script("/resources/applicants/-;externalUserId=member_u1/one", fakeResponse{status: 200, body: `{"id":"ap_9"}`})

	app, err := s.client.GetApplicantByExternalID(context.Background(), "member_u1")
	s.Require().NoError(err)
	s.Equal("ap_9", app.ID)
}

func (s *ClientSuite) TestGetReviewStatusKeepsRawBody() {
	body := `{"reviewStatus":"completed","reviewResult":{"reviewAnswer":"RED","reviewRejectType":"RETRY"},"extra":true}`
	s.fake.script("/resources/applicants/ap_1/status", fakeResponse{status: 200, body: body})

	st, err := s.client.GetReviewStatus(context.Background(), "ap_1")
	s.Require().NoError(err)
	s.Equal("completed", st.ReviewStatus)
	answer, rejectType := st.Answer()
	s.Equal("RED", answer)
	s.Equal("RETRY", rejectType)
	s.JSONEq(body, string(st.Raw))
	s.JSONEq(`{"reviewAnswer":"RED","reviewRejectType":"RETRY"}`, string(st.ResultRaw))
}

func TestReviewResultReason(t *testing.T) {
	assert.Nil(t, (*ReviewResult)(nil).Reason())
	assert.Nil(t, (&ReviewResult{}).Reason())
	assert.Equal(t, "blurry", *(&ReviewResult{ModerationComment: "blurry", RejectLabels: []string{"X"}}).Reason())
	assert.Equal(t, "FORGERY, SELFIE_MISMATCH", *(&ReviewResult{RejectLabels: []string{"FORGERY", "SELFIE_MISMATCH"}}).Reason())
}

func (s *ClientSuite) TestIssueAccessToken() {
	s.fake.script("/resources/accessTokens", fakeResponse{status: 200, body: `{"token":"tok-1","userId":"member_u1"}`})

	tok, err := s.client.IssueAccessToken(context.Background(), "member_u1", "basic", 600*time.Second)
	s.Require().NoError(err)
	s.Equal("tok-1", tok.Token)
	s.Equal("/resources/accessTokens?levelName=basic&ttlInSecs=600&userId=member_u1", s.fake.hits()[0].requestURI)
}

func (s *ClientSuite) TestIssueAccessTokenRejectsEmptyToken() {
	s.fake.script("/resources/accessTokens", fakeResponse{status: 200, body: `{"token":""}`})

	_, err := s.client.IssueAccessToken(context.Background(), "member_u1", "basic", time.Minute)
	s.Equal(ErrorBadData, GetCategory(err))
}

func (s *ClientSuite) TestRetriesTransientFailuresAndResigns() {
	s.fake.script("/resources/applicants/ap_1/reset",
		fakeResponse{status: 503, body: `{"description":"down"}`},
		fakeResponse{status: 429},
		fakeResponse{status: 200, body: `{"ok":1}`},
	)

	s.Require().NoError(s.client.ResetApplicant(context.Background(), "ap_1"))

	hits := s.fake.hits()
	s.Require().Len(hits, 3)
	s.NotEqual(hits[0].ts, hits[1].ts, "each attempt is signed with its own timestamp")
	s.NotEqual(hits[1].ts, hits[2].ts)
}

func (s *ClientSuite) TestGivesUpAfterMaxAttempts() {
	s.fake.script("/resources/applicants/ap_1/status", fakeResponse{status: 502, body: `{"description":"bad gateway"}`})

	_, err := s.client.GetReviewStatus(context.Background(), "ap_1")

	var pe *ProviderError
	s.Require().True(errors.As(err, &pe))
	s.Equal(502, pe.StatusCode)
	s.Equal(ErrorProviderOutage, pe.Category)
	s.True(pe.Retryable)
	s.Equal("bad gateway", pe.Message)
	s.Len(s.fake.hits(), 3)
}

func (s *ClientSuite) TestDoesNotRetryClientErrors() {
	s.fake.script("/resources/applicants", fakeResponse{status: 400, body: `{"description":"levelName is invalid"}`})

	_, err := s.client.CreateApplicant(context.Background(), "nope", CreateApplicantRequest{ExternalUserID: "member_u1"})

	var pe *ProviderError
	s.Require().True(errors.As(err, &pe))
	s.Equal(400, pe.StatusCode)
	s.Equal(`{"description":"levelName is invalid"}`, pe.Body)
	s.Equal(ErrorBadData, pe.Category)
	s.False(pe.Retryable)
	s.Len(s.fake.hits(), 1)
}

func (s *ClientSuite) TestConflictAndNotFoundAreClassified() {
	s.fake.script("/resources/applicants", fakeResponse{status: 409, body: `{"description":"already exists"}`})
	_, err := s.client.CreateApplicant(context.Background(), "basic", CreateApplicantRequest{ExternalUserID: "member_u1"})
	s.True(IsConflict(err))

	_, err = s.client.GetApplicant(context.Background(), "missing")
	s.True(IsNotFound(err))
}

func (s *ClientSuite) TestWrongSecretIsAuthenticationError() {
	bad := New(Config{BaseURL: s.server.URL, AppToken: testAppToken, SecretKey: "wrong"},
		WithSleeper(func(context.Context, time.Duration) error { return nil }))
	s.fake.script("/resources/applicants/ap_1/one", fakeResponse{status: 200, body: `{"id":"ap_1"}`})

	_, err := bad.GetApplicant(context.Background(), "ap_1")
	s.Equal(ErrorAuthentication, GetCategory(err))
}

func (s *ClientSuite) TestOpenBreakerDisablesRetries() {
	s.fake.script("/resources/applicants/ap_1/status", fakeResponse{status: 500})

	_, err := s.client.GetReviewStatus(context.Background(), "ap_1")
	s.Require().Error(err)
	s.True(s.breaker.IsOpen(), "three consecutive failures open the breaker")
	s.Len(s.fake.hits(), 3)

	_, err = s.client.GetReviewStatus(context.Background(), "ap_1")
	s.Require().Error(err)
	s.Len(s.fake.hits(), 4, "open breaker allows a single attempt")
}

func (s *ClientSuite) TestListApplicantsQuery() {
	s.fake.script("/resources/applicants", fakeResponse{status: 200, body: `{"list":{"items":[{"id":"ap_1"}],"totalItems":7}}`})

	page, err := s.client.ListApplicants(context.Background(), ListParams{
		Offset:      20,
		Limit:       10,
		CreatedFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Equal(7, page.TotalItems)
	s.Require().Len(page.Items, 1)
	s.Equal("/resources/applicants?createdAtFrom=2026-01-01&limit=10&offset=20", s.fake.hits()[0].requestURI)
}

func (s *ClientSuite) TestSearchRequiresContactField() {
	_, err := s.client.SearchApplicants(context.Background(), SearchParams{})
	s.Equal(ErrorBadData, GetCategory(err))
	s.Empty(s.fake.hits())
}

func (s *ClientSuite) TestPassThroughQueriesReturnRawJSON() {
	s.fake.script("/resources/stats/applicants", fakeResponse{status: 200, body: `{"approved":3}`})
	s.fake.script("/resources/applicants/ap_1/requiredIdDocsStatus", fakeResponse{status: 200, body: `{"IDENTITY":{}}`})

	stats, err := s.client.GetStatistics(context.Background(),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.JSONEq(`{"approved":3}`, string(stats))

	docs, err := s.client.GetDocuments(context.Background(), "ap_1")
	s.Require().NoError(err)
	s.JSONEq(`{"IDENTITY":{}}`, string(docs))
}

func TestClientTimeoutIsProviderTimeout(t *testing.T) {
	fake := &fakeProvider{t: t, responses: map[string][]fakeResponse{}}
	fake.script("/resources/applicants/ap_1/one", fakeResponse{status: 200, body: `{}`, delay: 200 * time.Millisecond})
	server := httptest.NewServer(fake)
	defer server.Close()

	client := New(Config{BaseURL: server.URL, AppToken: testAppToken, SecretKey: testSecret, Timeout: 20 * time.Millisecond},
		WithRetryPolicy(RetryPolicy{MaxAttempts: 1}))

	_, err := client.GetApplicant(context.Background(), "ap_1")
	require.Error(t, err)
	assert.Equal(t, ErrorTimeout, GetCategory(err))
}

func TestProviderErrorMessage(t *testing.T) {
	err := newHTTPError("reset_applicant", 500, []byte("oops"))
	assert.Equal(t, "provider reset_applicant [provider_outage] status 500", err.Error())

	var decoded map[string]any
	assert.Error(t, json.Unmarshal([]byte(err.Body), &decoded))
}
