package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

func newTestHandler(origins []string, mw ...web.Middleware) *web.WebHandler {
	return web.NewWebHandler(web.HandlerOptions{CORSOrigins: origins},
		web.WithLogging(logger.NewDiscard()),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(mw...),
	)
}

func TestWebHandler_JSONResponse(t *testing.T) {
	wh := newTestHandler([]string{"*"})
	wh.Group("/api").GET("/things/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(map[string]string{"id": web.Param(r, "id")})
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"id":"42"}` {
		t.Errorf("Expected body {\"id\":\"42\"}, got %s", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected allow origin '*', got '%s'", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Errorf("Expected JSON content type, got %s", rec.Header().Get("Content-Type"))
	}
}

func TestWebHandler_Preflight(t *testing.T) {
	called := false
	wh := newTestHandler([]string{"*"})
	api := wh.Group("/api")
	api.PUT("/tasks/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		called = true
		return web.NewNoContent()
	})
	api.DELETE("/tasks/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		called = true
		return web.NewNoContent()
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/abc", nil)
	req.Header.Set("Origin", "http://elsewhere.test")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}
	if called {
		t.Error("Expected preflight not to reach the route handler")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("Expected DELETE to be allowed, got %s", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestWebHandler_CORSOriginList(t *testing.T) {
	wh := newTestHandler([]string{"http://allowed.test"})
	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("pong")
	})

	tests := []struct {
		origin string
		want   string
	}{
		{origin: "http://allowed.test", want: "http://allowed.test"},
		{origin: "http://other.test", want: ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		wh.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("Origin %s: expected allow origin '%s', got '%s'", tt.origin, tt.want, got)
		}
	}
}

func TestWebHandler_MiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name+"-before")
				resp := next(ctx, r)
				order = append(order, name+"-after")
				return resp
			}
		}
	}

	wh := newTestHandler(nil, record("global"))
	wh.Group("/g", record("group")).GET("/x", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		if web.GetTraceID(ctx) == "" {
			t.Error("Expected a trace id on the context")
		}
		return web.NewJSONResponse(true)
	}, record("route"))

	wh.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/g/x", nil))

	want := []string{"global-before", "group-before", "route-before", "handler", "route-after", "group-after", "global-after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("Expected order %v, got %v", want, order)
	}
}

func TestRespond_Redirect(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := web.Respond(context.Background(), rec, web.NewRedirect("/")); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("Expected status 303, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "/" {
		t.Errorf("Expected Location '/', got '%s'", rec.Header().Get("Location"))
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		resp web.Encoder
		want int
	}{
		{name: "nil", resp: nil, want: http.StatusNoContent},
		{name: "json", resp: web.NewJSONResponse(1), want: http.StatusOK},
		{name: "json with status", resp: web.NewJSONResponseWithStatus(1, http.StatusCreated), want: http.StatusCreated},
		{name: "framework error", resp: web.NewError("boom"), want: http.StatusInternalServerError},
		{name: "html", resp: web.NewHTMLResponse([]byte("<p>")), want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := web.StatusCode(tt.resp); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
