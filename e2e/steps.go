package e2e

import (
	"github.com/cucumber/godog"

	"kycgate/e2e/steps/common"
	"kycgate/e2e/steps/kyc"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (requests against arbitrary paths, assertions)
	common.RegisterSteps(ctx, tc)

	// Register verification and webhook steps
	kyc.RegisterSteps(ctx, tc)
}
