//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"spellbudex/internal/api"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   api.Kind
	}{
		{name: "401 is unauthorized", status: http.StatusUnauthorized, want: api.KindUnauthorized},
		{name: "403 is forbidden", status: http.StatusForbidden, want: api.KindForbidden},
		{name: "404 is not found", status: http.StatusNotFound, want: api.KindNotFound},
		{name: "400 is validation", status: http.StatusBadRequest, want: api.KindValidation},
		{name: "409 is validation", status: http.StatusConflict, want: api.KindValidation},
		{name: "422 is validation", status: http.StatusUnprocessableEntity, want: api.KindValidation},
		{name: "500 is server", status: http.StatusInternalServerError, want: api.KindServer},
		{name: "503 is server", status: http.StatusServiceUnavailable, want: api.KindServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.Classify(tc.status))
		})
	}
}

func TestIsKind(t *testing.T) {
	err := &api.Error{Kind: api.KindValidation, Status: 400, Message: "Email już jest zarejestrowany"}

	assert.True(t, api.IsKind(err, api.KindValidation))
	assert.False(t, api.IsKind(err, api.KindUnauthorized))
	assert.False(t, api.IsKind(nil, api.KindValidation))
	assert.Equal(t, "Email już jest zarejestrowany", api.Detail(err))
}
