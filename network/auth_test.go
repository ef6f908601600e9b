package network

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/observe"
)

// recordingService captures the options of the last request.
type recordingService struct {
	lastURL  string
	lastOpts RequestOptions
	disposed bool
}

func (r *recordingService) Request(_ context.Context, url string, opts RequestOptions) (*Response, error) {
	r.lastURL = url
	r.lastOpts = opts
	return &Response{Status: 200}, nil
}
func (r *recordingService) IsOnline() bool { return true }
func (r *recordingService) SubscribeConnectivity(fn observe.Listener[bool]) *observe.Subscription {
	o := observe.NewObservable(true)
	return o.Subscribe(fn)
}
func (r *recordingService) Dispose() { r.disposed = true }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func TestAuthClientAttachesBearer(t *testing.T) {
	inner := &recordingService{}
	token := signedToken(t, time.Now().Add(time.Hour))

	a, err := NewAuthClient(inner, StaticToken(token))
	if err != nil {
		t.Fatalf("NewAuthClient failed: %v", err)
	}

	if _, err := a.Request(context.Background(), "/v1/me", RequestOptions{}); err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	got := inner.lastOpts.Headers["Authorization"]
	if got != "Bearer "+token {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestAuthClientRejectsExpiredToken(t *testing.T) {
	inner := &recordingService{}
	expired := signedToken(t, time.Now().Add(-time.Hour))

	a, _ := NewAuthClient(inner, StaticToken(expired))

	_, err := a.Request(context.Background(), "/v1/me", RequestOptions{})
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeTokenExpired) {
		t.Errorf("expected TOKEN_EXPIRED, got %v", err)
	}
	if inner.lastURL != "" {
		t.Error("expired token must not reach the wire")
	}
}

func TestAuthClientPassesOpaqueTokens(t *testing.T) {
	inner := &recordingService{}
	a, _ := NewAuthClient(inner, StaticToken("opaque-session-token"))

	if _, err := a.Request(context.Background(), "/v1/me", RequestOptions{}); err != nil {
		t.Fatalf("opaque token should pass through, got %v", err)
	}
}

func TestAuthClientRequiresTokenSource(t *testing.T) {
	_, err := NewAuthClient(&recordingService{}, nil)
	if err == nil {
		t.Fatal("expected error without token source")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeConfigInvalid) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestAuthClientDelegatesDispose(t *testing.T) {
	inner := &recordingService{}
	a, _ := NewAuthClient(inner, StaticToken("tok"))
	a.Dispose()
	if !inner.disposed {
		t.Error("expected dispose to delegate")
	}
}
