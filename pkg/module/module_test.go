package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/estimator/pkg/module"
)

func mustModule(t *testing.T, prefix string, h http.Handler) *module.Module {
	t.Helper()
	m, err := module.New(prefix, h)
	if err != nil {
		t.Fatalf("New(%q): %v", prefix, err)
	}
	return m
}

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNewPrefixValidation(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"/api", false},
		{"/dashboard", false},
		{"", true},
		{"/", true},
		{"api", true},
		{"/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			_, err := module.New(tt.prefix, http.NewServeMux())
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", echoPath)

	m := mustModule(t, "/api", mux)

	tests := []struct {
		path string
		want string
	}{
		{"/api/orders/7", "/orders/7"},
		{"/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.path, nil)
			m.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("inner path = %q, want %q", got, tt.want)
			}
			if req.URL.Path != tt.path {
				t.Errorf("original request mutated: %q", req.URL.Path)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", echoPath)

	m := mustModule(t, "/api", mux)

	var seen string
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.URL.Path
			next.ServeHTTP(w, r)
		})
	})

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/estimate", nil))

	if seen != "/estimate" {
		t.Errorf("middleware saw %q, want /estimate", seen)
	}
}

func TestRouter(t *testing.T) {
	api := http.NewServeMux()
	api.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("orders"))
	})

	router := module.NewRouter()
	if err := router.Mount(mustModule(t, "/api", api)); err != nil {
		t.Fatal(err)
	}
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"module route", "/api/orders", http.StatusOK, "orders"},
		{"trailing slash", "/api/orders/", http.StatusOK, "orders"},
		{"native route", "/healthz", http.StatusOK, "ok"},
		{"prefix lookalike falls through", "/apiary", http.StatusNotFound, ""},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterDuplicateMount(t *testing.T) {
	router := module.NewRouter()
	if err := router.Mount(mustModule(t, "/api", http.NewServeMux())); err != nil {
		t.Fatal(err)
	}
	if err := router.Mount(mustModule(t, "/api", http.NewServeMux())); err == nil {
		t.Error("expected duplicate mount error")
	}
}
