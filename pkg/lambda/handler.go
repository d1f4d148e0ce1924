package lambda

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"edge-header-policy/internal/models"
	"edge-header-policy/internal/services"
)

// Handler adapts the header policy to the Lambda@Edge invocation contract
type Handler struct {
	policy services.HeaderPolicyService
	logger *logrus.Logger
}

// NewHandler creates a Lambda handler around a header policy service
func NewHandler(policy services.HeaderPolicyService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{policy: policy, logger: logger}
}

// Handle processes one viewer/origin response event and returns the mutated
// response. The error is only non-nil when the event breaks the platform
// contract, e.g. has no record.
func (h *Handler) Handle(ctx context.Context, event models.Event) (*models.Response, error) {
	fields := logrus.Fields{}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	if lambdacontext.FunctionName != "" {
		fields["function_name"] = lambdacontext.FunctionName
	}

	resp, err := h.policy.ProcessEvent(ctx, &event)
	if err != nil {
		h.logger.WithFields(fields).WithError(err).Error("Rejected malformed edge event")
		return nil, fmt.Errorf("failed to process edge event: %w", err)
	}

	h.logger.WithFields(fields).WithField("status", resp.Status).Debug("Edge response ready")
	return resp, nil
}
