package handlers

// @title Edge Header Policy Harness
// @version 1.0
// @description Local harness for the CloudFront response header policy: cache lifetimes, redirect normalization and security headers.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @tag.name events
// @tag.description Run Lambda@Edge payloads through the header policy

// @tag.name policy
// @tag.description Preview cache decisions
