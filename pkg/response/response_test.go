package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestError_MapsDomainKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("bad"), http.StatusBadRequest, domain.CodeValidation},
		{"not found", domain.NewNotFoundError("Room", "1"), http.StatusNotFound, domain.CodeNotFound},
		{"conflict", domain.NewConflictError("stale"), http.StatusConflict, domain.CodeConflict},
		{"forbidden", domain.NewForbiddenError("no"), http.StatusForbidden, domain.CodeForbidden},
		{"invalid state", domain.NewInvalidStateError("A", "B"), http.StatusBadRequest, domain.CodeInvalidState},
		{"custom code", domain.NewValidationError("taken").WithCode("SLOT_UNAVAILABLE"), http.StatusBadRequest, "SLOT_UNAVAILABLE"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestPaginated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paginated(c, []string{"a"}, 21, 1, 20)

	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 2, body.Pagination.TotalPages)
	assert.True(t, body.Success)
}
