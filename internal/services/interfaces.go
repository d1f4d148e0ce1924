package services

import (
	"context"

	"edge-header-policy/internal/models"
)

// HeaderPolicyService defines the response header policy applied at the edge
type HeaderPolicyService interface {
	// ProcessEvent applies the policy to the first record of a Lambda@Edge event
	ProcessEvent(ctx context.Context, event *models.Event) (*models.Response, error)

	// Apply mutates resp in place and returns it
	Apply(ctx context.Context, req *models.Request, resp *models.Response) *models.Response

	// Evaluate reports the decision for the given input without mutating anything
	Evaluate(ctx context.Context, in PolicyInput) *PolicyDecision
}
