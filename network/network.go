package network

import (
	"context"
	"net/http"
	"time"

	"github.com/skillsenselab/appkit/observe"
)

// RequestOptions carries per-request settings.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are merged over the client's default headers.
	Headers map[string]string
	// Body is the raw request body, nil for none.
	Body []byte
	// Timeout overrides the client default for this request.
	Timeout time.Duration
}

// Response is the result of a completed request.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// OK reports whether the response status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Service is the network capability contract: request execution plus a
// connectivity observable.
type Service interface {
	// Request executes an HTTP request. Deadline overruns surface as a
	// REQUEST_TIMEOUT error, distinct from generic failures.
	Request(ctx context.Context, url string, opts RequestOptions) (*Response, error)
	// IsOnline reports the last known connectivity state.
	IsOnline() bool
	// SubscribeConnectivity registers a listener for connectivity changes.
	// The current state is delivered before the call returns.
	SubscribeConnectivity(fn observe.Listener[bool]) *observe.Subscription
	// Dispose releases the native connectivity watch.
	Dispose()
}
