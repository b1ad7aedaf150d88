package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/api"
	"blogapi/internal/store/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires a router over a fresh in-memory store. The minimum
// bcrypt cost keeps the password tests fast.
func newTestRouter(t *testing.T) (*gin.Engine, *memstore.MemStore) {
	t.Helper()
	st := memstore.New()
	router := api.NewRouter(st, api.Options{BcryptCost: bcrypt.MinCost})
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// decodeMap decodes a JSON object response.
func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	decodeBody(t, w, &m)
	return m
}

func requireErrorBody(t *testing.T, w *httptest.ResponseRecorder, code int) string {
	t.Helper()
	require.Equal(t, code, w.Code)
	m := decodeMap(t, w)
	msg, ok := m["error"].(string)
	require.True(t, ok, "response should carry an error message, got %v", m)
	return msg
}
