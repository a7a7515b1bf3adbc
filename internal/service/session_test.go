package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/internal/testutil"
)

func TestSessionGate_CurrentUser(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		mockSetup func(*MockUserStore, *MockTokenManager)
		wantErr   error
		wantID    int64
	}{
		{
			name:      "absent token",
			token:     "",
			mockSetup: func(*MockUserStore, *MockTokenManager) {},
			wantErr:   model.ErrUnauthenticated,
		},
		{
			name:  "invalid token",
			token: "garbage",
			mockSetup: func(_ *MockUserStore, tm *MockTokenManager) {
				tm.On("Parse", "garbage").Return(int64(0), model.ErrInvalidToken)
			},
			wantErr: model.ErrUnauthenticated,
		},
		{
			name:  "user no longer exists",
			token: "valid",
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				tm.On("Parse", "valid").Return(int64(9), nil)
				us.On("GetByID", mock.Anything, int64(9)).Return(model.User{}, model.ErrNotFound)
			},
			wantErr: model.ErrUnauthenticated,
		},
		{
			name:  "valid session",
			token: "valid",
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				tm.On("Parse", "valid").Return(int64(9), nil)
				us.On("GetByID", mock.Anything, int64(9)).
					Return(model.User{ID: 9, Name: "Alice", Email: "alice@example.com"}, nil)
			},
			wantID: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := &MockUserStore{}
			tokenManager := &MockTokenManager{}
			tt.mockSetup(userStore, tokenManager)

			gate := NewSessionGate(userStore, tokenManager, testutil.MakeNoopLogger())

			user, err := gate.CurrentUser(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestSessionGate_StoreFailure(t *testing.T) {
	userStore := &MockUserStore{}
	tokenManager := &MockTokenManager{}

	tokenManager.On("Parse", "valid").Return(int64(9), nil)
	userStore.On("GetByID", mock.Anything, int64(9)).Return(model.User{}, errors.New("connection refused"))

	gate := NewSessionGate(userStore, tokenManager, testutil.MakeNoopLogger())

	_, err := gate.CurrentUser(context.Background(), "valid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUnauthenticated)
}
