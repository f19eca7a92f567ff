package llm

import (
	"errors"
	"fmt"
)

// maxErrorBodyChars bounds how much of an upstream error body is kept
const maxErrorBodyChars = 200

// StatusError is returned when the upstream answers with a non-2xx status
type StatusError struct {
	Transport  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s transport: upstream status %d", e.Transport, e.StatusCode)
	}
	return fmt.Sprintf("%s transport: upstream status %d: %s", e.Transport, e.StatusCode, e.Body)
}

// UpstreamError is returned when both the primary and the fallback transport failed
type UpstreamError struct {
	Primary  error
	Fallback error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream unavailable: primary: %v; fallback: %v", e.Primary, e.Fallback)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
