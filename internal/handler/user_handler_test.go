package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

func TestGetCurrentUser(t *testing.T) {
	h, m := createTestHandler()
	m.user.On("GetMe", mock.Anything).Return(&models.User{
		UserID:   "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}, nil)

	rr := serve(h, http.MethodGet, "/api/me", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var response UserResponse
	decodeBody(t, rr, &response)
	assert.Equal(t, UserResponse{UserID: "user-1", Username: "alice", Email: "alice@example.com"}, response)
}

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	h, m := createTestHandler()
	m.user.On("GetMe", mock.Anything).Return(nil, apperror.ErrUnauthorized)

	rr := serve(h, http.MethodGet, "/api/me", nil, "")

	assertJSONError(t, rr, http.StatusUnauthorized, "credentials")
}

func TestDeleteCurrentUser(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"database failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := createTestHandler()
			m.user.On("DeleteMe", mock.Anything).Return(tt.err)

			rr := serve(h, http.MethodDelete, "/api/me", nil, "")

			assert.Equal(t, tt.status, rr.Code)
			m.user.AssertExpectations(t)
		})
	}
}
