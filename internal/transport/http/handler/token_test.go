package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/token"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/handler"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "8c4f7c1e-6f0a-4d1b-9b7e-2f3a1c0d9e55"

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	v2      = domain.Generation{Name: "v2", Prefix: "/v2", TokenTTL: 30 * time.Minute, State: domain.GenerationActive}
)

// fakeIssuer implements the unexported credentialIssuer interface via method matching.
type fakeIssuer struct {
	issue func(ctx context.Context, secret string, ttl time.Duration) (*usecase.IssuedToken, error)
}

func (f *fakeIssuer) Issue(ctx context.Context, secret string, ttl time.Duration) (*usecase.IssuedToken, error) {
	return f.issue(ctx, secret, ttl)
}

func newTokenEngine(f *fakeIssuer) *gin.Engine {
	h := handler.NewTokenHandler(f, v2, discard)
	r := gin.New()
	r.POST("/v2/token", h.Issue)
	return r
}

func knownSecret(gotTTL *time.Duration) *fakeIssuer {
	return &fakeIssuer{issue: func(_ context.Context, secret string, ttl time.Duration) (*usecase.IssuedToken, error) {
		*gotTTL = ttl
		if secret != testSecret {
			return nil, domain.ErrDomainNotFound
		}
		return &usecase.IssuedToken{Token: "signed.jwt.value", Owner: &domain.User{ID: "user-1"}}, nil
	}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func TestIssue_JSONBody_Returns200WithToken(t *testing.T) {
	var ttl time.Duration
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v2/token", strings.NewReader(`{"clientSecret":"`+testSecret+`"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(knownSecret(&ttl)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decode(t, w)
	if env.Code != 200 || env.Token != "signed.jwt.value" || env.Message == "" {
		t.Errorf("envelope = %+v", env)
	}
	if ttl != 30*time.Minute {
		t.Errorf("ttl = %v, want the generation's 30m", ttl)
	}
}

func TestIssue_FormBody_Returns200(t *testing.T) {
	var ttl time.Duration
	form := url.Values{"clientSecret": {testSecret}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	newTokenEngine(knownSecret(&ttl)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestIssue_UnknownOrMissingSecret_Returns401WithoutToken(t *testing.T) {
	var ttl time.Duration
	for _, body := range []string{`{"clientSecret":"nope"}`, `{}`, `{bad json}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v2/token", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newTokenEngine(knownSecret(&ttl)).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("body %s: status = %d, want 401", body, w.Code)
			continue
		}
		if env := decode(t, w); env.Token != "" || env.Code != http.StatusUnauthorized {
			t.Errorf("body %s: envelope = %+v", body, env)
		}
	}
}

func TestIssue_InternalError_Returns500WithoutDetail(t *testing.T) {
	f := &fakeIssuer{issue: func(context.Context, string, time.Duration) (*usecase.IssuedToken, error) {
		return nil, errors.New("pq: relation \"domains\" does not exist")
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v2/token", strings.NewReader(`{"clientSecret":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(f).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "relation") {
		t.Errorf("storage detail leaked: %s", w.Body.String())
	}
}

func TestClaims_EchoesDecodedToken(t *testing.T) {
	epoch := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	m := token.NewManager([]byte("handler-test-secret-that-is-32-chars"), "nodebird").
		WithClock(func() time.Time { return epoch })
	raw, _, err := m.Mint(&domain.User{ID: "user-1", Nick: "zero"}, 30*time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	r := gin.New()
	r.GET("/v2/test", middleware.VerifyToken(m), handler.Claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/test", nil)
	req.Header.Set("Authorization", raw)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["id"] != "user-1" || got["nick"] != "zero" || got["iss"] != "nodebird" {
		t.Errorf("claims = %v", got)
	}
	if got["exp"] != float64(epoch.Add(30*time.Minute).Unix()) {
		t.Errorf("exp = %v", got["exp"])
	}
}
