package network

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/observe"
)

// TokenSource supplies the current access token for authenticated requests.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource that always yields the given token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// AuthClient decorates a network Service with bearer authentication. Tokens
// are inspected (not signature-verified, the backend does that) so an
// already-expired token is rejected locally instead of burning a round trip.
type AuthClient struct {
	inner  Service
	source TokenSource
	parser *jwt.Parser
}

// NewAuthClient wraps inner with bearer auth from the token source.
func NewAuthClient(inner Service, source TokenSource) (*AuthClient, error) {
	if inner == nil {
		return nil, apperrors.Internal("auth network requires a baseline client")
	}
	if source == nil {
		return nil, apperrors.ConfigInvalid("network", "no token source configured")
	}
	return &AuthClient{
		inner:  inner,
		source: source,
		parser: jwt.NewParser(),
	}, nil
}

// Request attaches the bearer token and delegates to the wrapped client.
func (a *AuthClient) Request(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	token, err := a.source(ctx)
	if err != nil {
		return nil, apperrors.ConfigInvalid("network", "token source failed").WithCause(err)
	}

	if err := a.checkExpiry(token); err != nil {
		return nil, err
	}

	if opts.Headers == nil {
		opts.Headers = make(map[string]string)
	}
	opts.Headers["Authorization"] = "Bearer " + token

	return a.inner.Request(ctx, url, opts)
}

// IsOnline delegates to the wrapped client.
func (a *AuthClient) IsOnline() bool {
	return a.inner.IsOnline()
}

// SubscribeConnectivity delegates to the wrapped client.
func (a *AuthClient) SubscribeConnectivity(fn observe.Listener[bool]) *observe.Subscription {
	return a.inner.SubscribeConnectivity(fn)
}

// Dispose delegates to the wrapped client.
func (a *AuthClient) Dispose() {
	a.inner.Dispose()
}

// checkExpiry rejects tokens that are parseable JWTs with an exp claim in
// the past. Opaque tokens pass through untouched.
func (a *AuthClient) checkExpiry(token string) error {
	parsed, _, err := a.parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return apperrors.TokenExpired()
	}
	return nil
}
