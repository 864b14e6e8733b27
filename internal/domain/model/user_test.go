package model

import (
	"testing"

	apperrors "github.com/William9701/user-service/internal/errors"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateUserRequest
		wantErr  bool
		wantCode apperrors.ErrorCode
	}{
		{
			name: "valid",
			req:  CreateUserRequest{Email: "user@example.com", Password: "P@ssw0rd1"},
		},
		{
			name:     "missing email",
			req:      CreateUserRequest{Password: "P@ssw0rd1"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "missing password",
			req:      CreateUserRequest{Email: "user@example.com"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "malformed email",
			req:      CreateUserRequest{Email: "not-an-email", Password: "P@ssw0rd1"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "email with display name rejected",
			req:      CreateUserRequest{Email: "User <user@example.com>", Password: "P@ssw0rd1"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "too short password",
			req:      CreateUserRequest{Email: "user@example.com", Password: "P@s1"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "no digit",
			req:      CreateUserRequest{Email: "user@example.com", Password: "P@ssword!"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "no symbol",
			req:      CreateUserRequest{Email: "user@example.com", Password: "Passw0rd1"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "no letter",
			req:      CreateUserRequest{Email: "user@example.com", Password: "12345678!"},
			wantErr:  true,
			wantCode: apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}
