package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxRequestIDKey))
	})

	cases := map[string]struct {
		inbound string
		keep    bool
	}{
		"propagates well formed id": {inbound: "req-123.abc", keep: true},
		"generates when missing":    {inbound: ""},
		"replaces malformed id":     {inbound: "bad id\nwith newline"},
		"replaces oversized id":     {inbound: strings.Repeat("a", 65)},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.inbound != "" {
				req.Header.Set(HeaderRequestID, tc.inbound)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			require.NotEmpty(t, got)
			require.Equal(t, got, w.Body.String())
			if tc.keep {
				require.Equal(t, tc.inbound, got)
			} else {
				require.NotEqual(t, tc.inbound, got)
				require.Len(t, got, 36)
			}
		})
	}
}
