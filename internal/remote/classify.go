package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jask/jaskweather/internal/domain"
)

// classifyTransport maps a failed round trip. Cancellation by the caller is
// returned as is; it is not a failure.
func classifyTransport(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.Wrap(domain.CodeTimeout, "openweather: request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.Wrap(domain.CodeTimeout, "openweather: request timed out", err)
	}
	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return domain.Wrap(domain.CodeNetwork, "openweather: network unreachable", err)
	}
	return domain.Wrap(domain.CodeUnknown, "openweather: request failed", err)
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.New(domain.CodeAPIKey, "openweather: api key rejected")
	case status == http.StatusNotFound:
		return domain.New(domain.CodeCityNotFound, "openweather: city not found")
	case status >= 500 && status <= 599:
		return domain.ServerError(status)
	default:
		e := domain.New(domain.CodeUnknown, fmt.Sprintf("openweather: unexpected status %d", status))
		e.Status = status
		return e
	}
}
