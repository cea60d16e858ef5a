package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

func newHandler(log *logger.Logger) *web.WebHandler {
	return web.NewWebHandler(web.HandlerOptions{},
		web.WithLogging(log),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON error body, got %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestErrors_AppErrorPassesThrough(t *testing.T) {
	wh := newHandler(logger.NewDiscard())
	wh.GET("/missing", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "task not found")
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body["code"] != "not_found" || body["message"] != "task not found" {
		t.Errorf("Unexpected body %v", body)
	}
}

type plainError struct{ error }

func (plainError) Encode() ([]byte, string, error) { return nil, "", nil }

func TestErrors_UnknownErrorIsMasked(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf))
	wh := newHandler(log)
	wh.GET("/boom", func(ctx context.Context, r *http.Request) web.Encoder {
		return plainError{errors.New("dial tcp: connection refused")}
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body["message"] != "Internal Server Error" {
		t.Errorf("Expected masked message, got %v", body)
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Error("Expected the original error to be logged")
	}
}

func TestPanics_Recovered(t *testing.T) {
	wh := newHandler(logger.NewDiscard())
	wh.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("nil map")
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if strings.Contains(body["message"], "PANIC") {
		t.Error("Expected panic details to stay out of the response")
	}
}

func TestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(logger.NewDefault(logger.WithOutput(&buf)))
	wh.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	wh.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))

	out := buf.String()
	if !strings.Contains(out, `"msg":"request completed"`) {
		t.Fatalf("Expected a completion record, got %s", out)
	}
	if !strings.Contains(out, `"statuscode":200`) || !strings.Contains(out, `"path":"/ok?x=1"`) {
		t.Errorf("Expected status and path in log, got %s", out)
	}
}
