package authenticate

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/lib/api/cont"
	authservice "github.com/Ro706/Project-MARS/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAuth struct {
	user *entity.User
}

func (f *fakeAuth) AuthenticateByToken(token string) (*entity.User, error) {
	if f.user != nil && token == "valid-token" {
		return f.user, nil
	}
	return nil, authservice.ErrInvalidToken
}

func guarded(auth Authenticate) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return New(log, auth)(inner)
}

func TestAuthenticate_NoToken(t *testing.T) {
	handler := guarded(&fakeAuth{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	handler := guarded(&fakeAuth{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("auth-token", "nonsense")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_AuthTokenHeader(t *testing.T) {
	user := &entity.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen *entity.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = cont.GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := New(log, &fakeAuth{user: user})(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("auth-token", "valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.Email, seen.Email)
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	user := &entity.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := New(log, &fakeAuth{user: user})(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
