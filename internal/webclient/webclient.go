package webclient

import (
	"context"
)

// WebClient is the narrow HTTP boundary the rest of the service talks
// through. Components depend on this interface so they can be tested with
// synthetic responses and no network access.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
