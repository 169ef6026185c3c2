package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/docstore"
	"applestore-clone/internal/domain"
	"applestore-clone/internal/service/identity"
	"applestore-clone/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	user *domain.User
	err  error
}

func (s *stubAuthenticator) SignIn(_ context.Context, _ identity.Credential) (*domain.User, error) {
	return s.user, s.err
}

// flakyDocs fails every write while failWrites is set.
type flakyDocs struct {
	*docstore.Memory
	failWrites bool
	pingErr    error
}

func (f *flakyDocs) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if f.failWrites {
		return errors.New("document store unavailable")
	}
	return f.Memory.Set(ctx, collection, id, fields)
}

func (f *flakyDocs) Delete(ctx context.Context, collection, id string) error {
	if f.failWrites {
		return errors.New("document store unavailable")
	}
	return f.Memory.Delete(ctx, collection, id)
}

func (f *flakyDocs) Ping(context.Context) error {
	return f.pingErr
}

type testEnv struct {
	router  *gin.Engine
	manager *session.Manager
	docs    *flakyDocs
}

func newTestEnv(t *testing.T, auth session.Authenticator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	docs := &flakyDocs{Memory: docstore.NewMemory()}
	manager := session.NewManager("client-id", auth, func() *catalog.Store {
		return catalog.New(docs, nil)
	}, nil)
	t.Cleanup(manager.Close)

	router, err := buildRouter(zap.NewNop(), Deps{Session: manager, Docs: docs})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, manager: manager, docs: docs}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	rec := e.do(http.MethodPost, "/session/federated", `{"idToken":"id","accessToken":"access"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign in: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestBuildRouter_RequiresSession(t *testing.T) {
	if _, err := buildRouter(zap.NewNop(), Deps{}); err == nil {
		t.Fatalf("expected error without a session manager")
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, &stubAuthenticator{})
	rec := env.do(http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t, &stubAuthenticator{})
	if rec := env.do(http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	env.docs.pingErr = errors.New("down")
	if rec := env.do(http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSessionMiddleware_RejectsAnonymous(t *testing.T) {
	env := newTestEnv(t, &stubAuthenticator{})
	rec := env.do(http.MethodGet, "/items", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSessionMiddleware_AfterEndSession(t *testing.T) {
	env := newTestEnv(t, &stubAuthenticator{user: &domain.User{ID: "u1"}})
	env.signIn(t)

	if rec := env.do(http.MethodDelete, "/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/items", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after session end, got %d", rec.Code)
	}
}
