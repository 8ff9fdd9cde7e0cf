package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleReq struct {
	ISBN   string `json:"isbn" validate:"required,isbn"`
	Title  string `json:"title" validate:"required,max=10"`
	Status string `json:"status" validate:"omitempty,oneof=read reading"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleReq{ISBN: "978-0-14-312774-1", Title: "ok"}))

	details := ValidateStruct(sampleReq{ISBN: "123", Status: "lost"})
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "isbn must be a valid ISBN (10 or 13 digits)", byField["isbn"])
	assert.Equal(t, "title is required", byField["title"])
	assert.Equal(t, "status must be one of: read reading", byField["status"])
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
		code int
	}{
		{"valid", `{"isbn":"0306406152","title":"Book"}`, true, http.StatusOK},
		{"malformed", `{"isbn":`, false, http.StatusBadRequest},
		{"empty", ``, false, http.StatusBadRequest},
		{"invalid fields", `{"isbn":"1"}`, false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v sampleReq
			ok := DecodeAndValidate(w, r, &v)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, tt.code, w.Code)
				assert.Contains(t, w.Body.String(), CodeValidation)
			}
		})
	}
}
