package service

import (
	"context"
	"io"
)

// Request describes one call against the remote storefront API.
type Request struct {
	Method string
	Path   string // relative to the API base URL, e.g. /api/products
	Query  map[string]string
	Token  string // bearer credential; empty for public routes
	Body   any    // JSON-encoded when set

	// Multipart form, used instead of Body when Fields is not nil.
	Fields map[string]string
	File   *FilePart
}

// FilePart is an optional file attached to a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// APIClient issues requests to the remote API. Non-2xx responses come back as *errors.APIError.
type APIClient interface {
	// Do sends req and returns the raw response body.
	Do(ctx context.Context, req *Request) ([]byte, error)
}

// TokenInspector reads claims from a bearer credential without verifying it.
type TokenInspector interface {
	// Expired reports whether the token carries an exp claim in the past.
	Expired(token string) bool
}
