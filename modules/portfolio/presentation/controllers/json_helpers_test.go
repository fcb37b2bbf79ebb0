package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON_PanicsOnUnencodablePayload(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.Panics(t, func() {
		writeJSON(rec, 200, map[string]any{"ch": make(chan int)})
	})
}

func TestWriteJSON_NilPayloadWritesHeaderOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeJSON(rec, 204, nil)

	require.Equal(t, 204, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
