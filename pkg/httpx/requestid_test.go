package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/adbridge/pkg/ctxmeta"
	"github.com/Gunvolt24/adbridge/pkg/httpx"
)

// serveWithHeader — прогоняет запрос через middleware и возвращает
// заголовок ответа и request_id, который увидел обработчик.
func serveWithHeader(t *testing.T, header string) (respID, ctxID string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(httpx.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		ctxID, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if header != "" {
		req.Header.Set(httpx.HeaderRequestID, header)
	}
	r.ServeHTTP(w, req)
	return w.Header().Get(httpx.HeaderRequestID), ctxID
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	for _, id := range []string{"custom-id-42", "trace:abc/1", strings.Repeat("a", 128)} {
		respID, ctxID := serveWithHeader(t, id)
		if respID != id || ctxID != id {
			t.Fatalf("client id %q must be kept: header=%q ctx=%q", id, respID, ctxID)
		}
	}
}

func TestRequestIDMiddleware_GeneratesUUID(t *testing.T) {
	cases := map[string]string{
		"missing":   "",
		"oversized": strings.Repeat("x", 129),
		"space":     "id with space",
		"newline":   "id\nforged log line",
		"non_ascii": "идентификатор",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			respID, ctxID := serveWithHeader(t, header)
			if _, err := uuid.Parse(respID); err != nil {
				t.Fatalf("expected generated UUID, got %q", respID)
			}
			if ctxID != respID {
				t.Fatalf("ctx id %q must match header %q", ctxID, respID)
			}
		})
	}
}
