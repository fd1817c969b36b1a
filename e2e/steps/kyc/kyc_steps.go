package kyc

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/cucumber/godog"
	"github.com/gofrs/uuid"
)

const (
	webhookPath     = "/webhooks/kyc"
	signatureHeader = "X-Payload-Digest"
	adminHeader     = "X-Admin-Token"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body []byte, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetAdminToken() string
	GetWebhookSecret() string
}

// RegisterSteps registers verification and webhook step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &kycSteps{tc: tc}

	// Webhook delivery steps
	ctx.Step(`^the provider delivers a signed "([^"]*)" webhook for applicant "([^"]*)" with review status "([^"]*)"$`, steps.deliverSigned)
	ctx.Step(`^the provider delivers a signed malformed webhook$`, steps.deliverSignedMalformed)
	ctx.Step(`^someone delivers an unsigned "([^"]*)" webhook for applicant "([^"]*)"$`, steps.deliverUnsigned)
	ctx.Step(`^someone delivers a "([^"]*)" webhook signed with the wrong secret$`, steps.deliverForged)

	// Status steps
	ctx.Step(`^a user who never started verification$`, steps.freshUser)
	ctx.Step(`^an admin requests that user's verification status$`, steps.adminStatus)
	ctx.Step(`^a request for that user's verification status without the admin token$`, steps.adminStatusWithoutToken)
	ctx.Step(`^the user requests their status without a bearer token$`, steps.userStatusWithoutToken)
}

type kycSteps struct {
	tc     TestContext
	userID string
}

func (s *kycSteps) webhookBody(eventType, applicantID, reviewStatus string) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":         eventType,
		"applicantId":  applicantID,
		"reviewStatus": reviewStatus,
	})
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *kycSteps) deliver(body []byte, secret string) error {
	headers := map[string]string{}
	if secret != "" {
		headers[signatureHeader] = sign(body, secret)
	}
	return s.tc.Do(http.MethodPost, webhookPath, body, headers)
}

func (s *kycSteps) requireSecret() (string, error) {
	secret := s.tc.GetWebhookSecret()
	if secret == "" {
		// KYC_E2E_WEBHOOK_SECRET is unset.
		return "", godog.ErrPending
	}
	return secret, nil
}

func (s *kycSteps) deliverSigned(ctx context.Context, eventType, applicantID, reviewStatus string) error {
	secret, err := s.requireSecret()
	if err != nil {
		return err
	}
	body, err := s.webhookBody(eventType, applicantID, reviewStatus)
	if err != nil {
		return err
	}
	return s.deliver(body, secret)
}

func (s *kycSteps) deliverSignedMalformed(ctx context.Context) error {
	secret, err := s.requireSecret()
	if err != nil {
		return err
	}
	return s.deliver([]byte(`{"type":`), secret)
}

func (s *kycSteps) deliverUnsigned(ctx context.Context, eventType, applicantID string) error {
	body, err := s.webhookBody(eventType, applicantID, "completed")
	if err != nil {
		return err
	}
	return s.deliver(body, "")
}

func (s *kycSteps) deliverForged(ctx context.Context, eventType string) error {
	body, err := s.webhookBody(eventType, "forged-applicant", "completed")
	if err != nil {
		return err
	}
	return s.deliver(body, s.tc.GetWebhookSecret()+"-forged")
}

func (s *kycSteps) freshUser(ctx context.Context) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	s.userID = id.String()
	return nil
}

func (s *kycSteps) adminStatus(ctx context.Context) error {
	token := s.tc.GetAdminToken()
	if token == "" {
		return godog.ErrPending
	}
	return s.tc.GET("/admin/kyc/users/"+s.userID, map[string]string{adminHeader: token})
}

func (s *kycSteps) adminStatusWithoutToken(ctx context.Context) error {
	return s.tc.GET("/admin/kyc/users/"+s.userID, nil)
}

func (s *kycSteps) userStatusWithoutToken(ctx context.Context) error {
	return s.tc.GET("/kyc/status", nil)
}
