package webutil

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, handler AppHandler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	MakeHandler(handler)(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestMakeHandler(t *testing.T) {
	t.Run("nil error writes nothing extra", func(t *testing.T) {
		rec := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
			RespondWithJSON(w, http.StatusOK, map[string]string{"message": "done"})
			return nil
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", messageOf(t, rec))
	})

	t.Run("HTTPError maps to its code and message", func(t *testing.T) {
		rec := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
			return ErrNotFound("User not found")
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", messageOf(t, rec))
	})

	t.Run("wrapped HTTPError keeps the public message", func(t *testing.T) {
		cause := errors.New("pq: connection refused")
		rec := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
			return NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to delete user record", cause)
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to delete user record", messageOf(t, rec))
	})

	t.Run("sql.ErrNoRows maps to 404", func(t *testing.T) {
		rec := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
			return sql.ErrNoRows
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error maps to a generic 500", func(t *testing.T) {
		rec := runHandler(t, func(w http.ResponseWriter, r *http.Request) error {
			return errors.New("secret upstream detail")
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", messageOf(t, rec))
	})
}
