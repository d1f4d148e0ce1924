package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"edge-header-policy/internal/models"
)

// PolicyDecision is the outcome of the header policy for one response
type PolicyDecision struct {
	Status            string           `json:"status"`
	StatusDescription string           `json:"status_description,omitempty"`
	Redirected        bool             `json:"redirect_normalized"`
	Path              string           `json:"path"`
	ContentList       bool             `json:"content_list"`
	ContentType       string           `json:"content_type,omitempty"`
	CacheControl      string           `json:"cache_control"`
	Tier              PolicyTier       `json:"tier"`
	SecurityHeaders   []SecurityHeader `json:"security_headers"`
}

// headerPolicyService implements HeaderPolicyService
type headerPolicyService struct {
	logger *logrus.Logger
}

// NewHeaderPolicyService creates a new header policy service
func NewHeaderPolicyService(logger *logrus.Logger) HeaderPolicyService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &headerPolicyService{logger: logger}
}

// ProcessEvent applies the policy to the response of the event's first record
func (s *headerPolicyService) ProcessEvent(ctx context.Context, event *models.Event) (*models.Response, error) {
	cf, err := event.Record()
	if err != nil {
		return nil, err
	}

	resp := s.Apply(ctx, cf.Request, cf.Response)

	s.logger.WithFields(logrus.Fields{
		"request_id":      cf.Config.RequestID,
		"distribution_id": cf.Config.DistributionID,
		"event_type":      cf.Config.EventType,
		"uri":             cf.Request.URI,
		"status":          resp.Status,
	}).Debug("Processed edge event")

	return resp, nil
}

// Apply rewrites the response in place and returns it
func (s *headerPolicyService) Apply(ctx context.Context, req *models.Request, resp *models.Response) *models.Response {
	redirected := NormalizeRedirect(resp)

	if resp.Headers == nil {
		resp.Headers = models.Headers{}
	}
	originCache := resp.Headers.Values("cache-control")

	in := PolicyInput{
		Status: resp.Status,
		Path:   RequestPath(req.URI),
	}
	if in.Status == statusOK {
		in.ContentType, _ = resp.Headers.Get("content-type")
	}

	directive, tier := DetermineCacheControl(in)
	resp.Headers.Set("Cache-Control", directive)
	ApplySecurityHeaders(resp.Headers)

	fields := logrus.Fields{
		"status":        resp.Status,
		"redirected":    redirected,
		"path":          in.Path,
		"content_type":  in.ContentType,
		"cache_control": directive,
		"tier":          tier,
	}
	if len(originCache) > 0 {
		fields["origin_cache_control"] = strings.Join(originCache, ", ")
	}
	s.logger.WithFields(fields).Debug("Applied header policy")

	return resp
}

// Evaluate computes the decision Apply would make without touching a response
func (s *headerPolicyService) Evaluate(ctx context.Context, in PolicyInput) *PolicyDecision {
	resp := &models.Response{Status: in.Status}
	redirected := NormalizeRedirect(resp)

	path := RequestPath(in.Path)
	eval := PolicyInput{Status: resp.Status, Path: path}
	if eval.Status == statusOK {
		eval.ContentType = in.ContentType
	}

	directive, tier := DetermineCacheControl(eval)

	return &PolicyDecision{
		Status:            resp.Status,
		StatusDescription: resp.StatusDescription,
		Redirected:        redirected,
		Path:              path,
		ContentList:       IsContentList(path),
		ContentType:       eval.ContentType,
		CacheControl:      directive,
		Tier:              tier,
		SecurityHeaders:   SecurityHeaders(),
	}
}

// NormalizeRedirect turns a temporary 302 into a permanent 301 and reports
// whether it did so.
func NormalizeRedirect(resp *models.Response) bool {
	if resp.Status != statusFound {
		return false
	}
	resp.Status = statusMovedPermanently
	resp.StatusDescription = movedPermanentlyDescription
	return true
}

// RequestPath returns the path component of a request URI, without query or
// fragment. The path is left escaped and a leading "//" is not read as a host.
// Backslashes in the path read as forward slashes, so /albums\ is /albums/.
func RequestPath(uri string) string {
	path := uri
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		path = uri[:i]
	}
	return strings.ReplaceAll(path, "\\", "/")
}
