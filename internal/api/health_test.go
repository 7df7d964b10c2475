package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return assertErr{} }

	cases := []struct {
		name string
		ping func(context.Context) error
		path string
		want int
	}{
		{name: "healthz ok", ping: failing, path: "/healthz", want: 200},
		{name: "readyz ok", ping: ok, path: "/readyz", want: 200},
		{name: "readyz degraded", ping: failing, path: "/readyz", want: 503},
		{name: "readyz without ping", ping: nil, path: "/readyz", want: 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.ping).Register(r)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["status"] == "" {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
