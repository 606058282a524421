package driven

import (
	"context"
	"net/url"
)

// ResponseSubmitter posts one form response.
type ResponseSubmitter interface {
	// Submit posts values to the form response endpoint and returns the
	// HTTP status code. Transport failures are returned as errors.
	Submit(ctx context.Context, endpoint string, values url.Values) (int, error)
}
