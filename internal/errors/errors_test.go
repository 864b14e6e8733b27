package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "user not found",
			},
			want: "user not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to store session",
				Cause:   errors.New("connection refused"),
			},
			want: "failed to store session: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"validation", Validation("bad input"), ErrCodeValidation},
		{"conflict", Conflict("email already in use"), ErrCodeConflict},
		{"not found", NotFound("user not found"), ErrCodeNotFound},
		{"unauthorized", Unauthorized("invalid credentials"), ErrCodeUnauthorized},
		{"internal", Internal("store unavailable"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
		})
	}
}

func TestIsCodeHelpers(t *testing.T) {
	err := Unauthorized("session invalid")

	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized should be true")
	}
	if IsConflict(err) {
		t.Error("IsConflict should be false")
	}

	// Helpers see through wrapping.
	wrapped := Wrap(err, ErrCodeInternal, "request failed")
	if !IsInternal(wrapped) {
		t.Error("IsInternal should be true for the outer error")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Invalid email format")

	if err.Field != "email" {
		t.Errorf("Field = %q, want email", err.Field)
	}
	if GetField(err) != "email" {
		t.Errorf("GetField = %q, want email", GetField(err))
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Conflict("dup")); got != ErrCodeConflict {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeConflict)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
