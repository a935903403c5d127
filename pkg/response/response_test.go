package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSONError(w, discard(), http.StatusForbidden, "high_risk_blocked", "blocked")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "high_risk_blocked", Message: "blocked"}, body)
}

func TestWriteJSONSuccess_NilBody(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSONSuccess(w, discard(), http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Amount float64 `json:"amount"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"amount": 10}`, false},
		{"unknown field", `{"amount": 10, "extra": 1}`, true},
		{"two objects", `{"amount": 10}{"amount": 11}`, true},
		{"malformed", `{"amount":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload

			err := DecodeJSON(httptest.NewRecorder(), r, &p)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 10.0, p.Amount)
		})
	}
}
