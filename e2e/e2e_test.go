package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the Gherkin suite against a live server. It is skipped
// unless KYC_E2E_BASE_URL is set.
func TestFeatures(t *testing.T) {
	if os.Getenv("KYC_E2E_BASE_URL") == "" {
		t.Skip("KYC_E2E_BASE_URL not set")
	}
	tc := NewTestContext()

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}
