package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// Retryable API error types and network failure messages. The SDK flattens
// HTTP failures into the error string, so the API side is matched on the
// error type names the Messages API returns.
var transientPatterns = []string{
	"rate_limit_error",
	"overloaded_error",
	"api_error",
	"internal server error",
	"connection reset by peer",
	"broken pipe",
	"i/o timeout",
	"tls handshake timeout",
	"no such host",
}

// IsTransient reports whether err looks safe to retry: network timeouts,
// dropped connections, and API throttling or server-side failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
