package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edge-header-policy/internal/models"
	"edge-header-policy/internal/services"
)

// EventHandler runs Lambda@Edge payloads through the header policy over HTTP
type EventHandler struct {
	policy services.HeaderPolicyService
}

// NewEventHandler creates a new event handler
func NewEventHandler(policy services.HeaderPolicyService) *EventHandler {
	return &EventHandler{policy: policy}
}

// ExchangeRequest is a bare request/response pair without the event envelope
type ExchangeRequest struct {
	Request  *models.Request  `json:"request" binding:"required"`
	Response *models.Response `json:"response" binding:"required"`
}

// PolicyQuery selects the inputs of a policy preview
type PolicyQuery struct {
	Status      string `form:"status" binding:"required,numeric,len=3"`
	URI         string `form:"uri" binding:"required"`
	ContentType string `form:"content_type"`
}

// ProcessEvent handles POST /api/v1/events
// @Summary Process a Lambda@Edge event
// @Description Applies the header policy to the response of the event's first record
// @Tags events
// @Accept json
// @Produce json
// @Param event body models.Event true "CloudFront origin-response event"
// @Success 200 {object} models.Response
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /events [post]
func (h *EventHandler) ProcessEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	h.respond(c, &event)
}

// ProcessExchange handles POST /api/v1/responses
// @Summary Process a request/response pair
// @Description Applies the header policy to a bare request/response pair
// @Tags events
// @Accept json
// @Produce json
// @Param exchange body ExchangeRequest true "Request and response"
// @Success 200 {object} models.Response
// @Failure 400 {object} middleware.ErrorResponse
// @Router /responses [post]
func (h *EventHandler) ProcessExchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	h.respond(c, models.NewEvent(req.Request, req.Response))
}

// EvaluatePolicy handles GET /api/v1/policy
// @Summary Preview a cache decision
// @Tags policy
// @Produce json
// @Param status query string true "Origin status code"
// @Param uri query string true "Request URI"
// @Param content_type query string false "Response content type"
// @Success 200 {object} services.PolicyDecision
// @Failure 400 {object} middleware.ErrorResponse
// @Router /policy [get]
func (h *EventHandler) EvaluatePolicy(c *gin.Context) {
	var query PolicyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	decision := h.policy.Evaluate(c.Request.Context(), services.PolicyInput{
		Status:      query.Status,
		Path:        query.URI,
		ContentType: query.ContentType,
	})

	c.JSON(http.StatusOK, decision)
}

func (h *EventHandler) respond(c *gin.Context, event *models.Event) {
	if err := event.Validate(); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	resp, err := h.policy.ProcessEvent(c.Request.Context(), event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
