package models

// Event is the payload CloudFront hands to a Lambda@Edge function.
// Only the first record is ever populated by the platform.
type Event struct {
	Records []Record `json:"Records" yaml:"Records" validate:"required,min=1,dive"`
}

// Record wraps the CloudFront section of an event record
type Record struct {
	CF CloudFront `json:"cf" yaml:"cf"`
}

// CloudFront holds the request/response pair of a single exchange
type CloudFront struct {
	Config   Config    `json:"config" yaml:"config"`
	Request  *Request  `json:"request" yaml:"request" validate:"required"`
	Response *Response `json:"response" yaml:"response" validate:"required"`
}

// Config describes the distribution and trigger that produced the event
type Config struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty" yaml:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty" yaml:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty" yaml:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}

// Request is the viewer request as seen by the edge. Only URI is consulted
// by the header policy; the rest is carried through untouched.
type Request struct {
	ClientIP    string  `json:"clientIp,omitempty" yaml:"clientIp,omitempty"`
	Method      string  `json:"method,omitempty" yaml:"method,omitempty"`
	URI         string  `json:"uri" yaml:"uri" validate:"required,startswith=/"`
	QueryString string  `json:"querystring,omitempty" yaml:"querystring,omitempty"`
	Headers     Headers `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Response is the origin response, mutated in place and returned to the edge
type Response struct {
	Status            string  `json:"status" yaml:"status" validate:"required,numeric,len=3"`
	StatusDescription string  `json:"statusDescription,omitempty" yaml:"statusDescription,omitempty"`
	Headers           Headers `json:"headers" yaml:"headers" validate:"required"`
}

// Record returns the CloudFront section of the first event record
func (e *Event) Record() (*CloudFront, error) {
	if e == nil || len(e.Records) == 0 {
		return nil, ErrNoRecords
	}

	cf := &e.Records[0].CF
	if cf.Request == nil {
		return nil, ErrMissingRequest
	}
	if cf.Response == nil {
		return nil, ErrMissingResponse
	}

	return cf, nil
}

// NewEvent builds a single-record event around a request/response pair
func NewEvent(req *Request, resp *Response) *Event {
	return &Event{
		Records: []Record{
			{CF: CloudFront{Request: req, Response: resp}},
		},
	}
}
