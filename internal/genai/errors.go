package genai

import (
	"context"
	"errors"
	"strings"
)

// ErrorKind labels a provider failure for logs and metrics.
type ErrorKind string

const (
	KindCanceled    ErrorKind = "canceled"
	KindTimeout     ErrorKind = "timeout"
	KindRateLimited ErrorKind = "rate_limited"
	KindQuota       ErrorKind = "quota"
	KindAuth        ErrorKind = "auth"
	KindUnavailable ErrorKind = "unavailable"
	KindBadRequest  ErrorKind = "bad_request"
	KindUnknown     ErrorKind = "unknown"
)

// ClassifyError maps err to an ErrorKind. Both SDKs surface HTTP status
// codes and API status names in their error text, which is what this
// matches on after the context errors.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "quota", "billing"):
		return KindQuota
	case containsAny(msg, "429", "rate limit", "too many requests", "resource_exhausted"):
		return KindRateLimited
	case containsAny(msg, "401", "403", "unauthorized", "unauthenticated", "permission_denied", "api key"):
		return KindAuth
	case containsAny(msg, "500", "502", "503", "504", "unavailable", "overloaded", "internal server error"):
		return KindUnavailable
	case containsAny(msg, "timeout", "deadline"):
		return KindTimeout
	case containsAny(msg, "400", "invalid_argument", "bad request"):
		return KindBadRequest
	default:
		return KindUnknown
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
