package support

import "errors"

// Domain-specific errors for the support package.
var (
	ErrEmptyMessage   = errors.New("message content is empty")
	ErrKnowledgeQuery = errors.New("knowledge service query failed")
)
