package api

import "context"

// TokenSource supplies the bearer token attached to every backend call.
// It is consulted per request so a refreshed token is picked up immediately.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func(ctx context.Context) (string, error)

// GetToken implements TokenSource
func (f TokenFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a TokenSource returning a fixed token
type StaticToken string

// GetToken implements TokenSource
func (s StaticToken) GetToken(context.Context) (string, error) {
	return string(s), nil
}
