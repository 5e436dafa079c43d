package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R100.00", FormatMoney(100))
	assert.Equal(t, "R12.50", FormatMoney(12.5))
	assert.Equal(t, "R0.00", FormatMoney(0))
}

func TestNormalizePhoneSA(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Local format untouched", "0821234567", "0821234567"},
		{"Plus 27 prefix", "+27821234567", "0821234567"},
		{"Bare 27 prefix", "27821234567", "0821234567"},
		{"Whitespace stripped", "082 123 4567", "0821234567"},
		{"Dashes stripped", "082-123-4567", "0821234567"},
		{"Free text left alone", "office line", "officeline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhoneSA(tt.input))
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, "something broke", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "something broke", body["error"])
}
