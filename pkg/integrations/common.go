package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/tilecard/pkg/buildinfo"
)

// DefaultTimeout bounds every provider request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the provider has no resource at the URL.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// non-200 responses other than 404).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given timeout. A timeout of
// zero uses DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// UserAgent is sent with every request.
var UserAgent = buildinfo.UserAgent()
