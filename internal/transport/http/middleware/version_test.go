package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
)

var versionGenerations = []domain.Generation{
	{Name: "v1", Prefix: "/v1", TokenTTL: time.Minute, State: domain.GenerationDeprecated},
	{Name: "v2", Prefix: "/v2", TokenTTL: 30 * time.Minute, State: domain.GenerationActive},
}

func newVersionEngine(reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.VersionGate(versionGenerations))
	r.Any("/v1/*any", func(c *gin.Context) { *reached = true })
	r.GET("/v2/test", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestVersionGate_DeprecatedAnswers410BeforeAnythingElse(t *testing.T) {
	reached := false
	r := newVersionEngine(&reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/token", nil))

	if w.Code != http.StatusGone {
		t.Fatalf("status = %d, want 410", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Code != http.StatusGone || env.Message == "" {
		t.Errorf("envelope = %+v", env)
	}
	if reached {
		t.Error("a handler after the gate ran")
	}
}

func TestVersionGate_UnroutedMethodsAndPaths(t *testing.T) {
	reached := false
	r := newVersionEngine(&reached)

	for _, rq := range []struct{ method, path string }{
		{"PROPFIND", "/v1/token"},
		{"PURGE", "/v1/test"},
		{"LINK", "/v1/posts/my"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rq.method, rq.path, nil))
		if w.Code != http.StatusGone {
			t.Errorf("%s %s = %d, want 410", rq.method, rq.path, w.Code)
		}
	}
}

func TestVersionGate_ActivePassesThrough(t *testing.T) {
	reached := false
	r := newVersionEngine(&reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/test", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v10/test", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("/v10/test status = %d, want 404", w.Code)
	}
}
