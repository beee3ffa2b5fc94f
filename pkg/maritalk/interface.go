package maritalk

import "context"

// IMaritalk defines the interface for the Maritaca AI chat client.
type IMaritalk interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
}
