package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParams, "block size must be positive, got %v", -1)

	if err.Code != ErrCodeInvalidParams {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidParams)
	}

	if err.Message != "block size must be positive, got -1" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "INVALID_PARAMS: block size must be positive, got -1"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("data too long")
	err := Wrap(ErrCodeEncode, cause, "encode payload")

	if err.Code != ErrCodeEncode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEncode)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if !strings.Contains(err.Error(), "data too long") {
		t.Errorf("Error() should include cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidGrid, "ragged"), ErrCodeInvalidGrid, true},
		{"different code", New(ErrCodeInvalidGrid, "ragged"), ErrCodeInvalidParams, false},
		{"wrapped with fmt", fmt.Errorf("layout: %w", New(ErrCodeInvalidParams, "x")), ErrCodeInvalidParams, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("stage: %w", New(ErrCodeInvalidColor, "bad color %q", "#zz"))
	if GetCode(err) != ErrCodeInvalidColor {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if UserMessage(err) != `bad color "#zz"` {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}

	plain := errors.New("boom")
	if GetCode(plain) != "" {
		t.Error("GetCode on plain error should be empty")
	}
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), 400},
		{New(ErrCodeEncode, "x"), 400},
		{New(ErrCodeFileNotFound, "x"), 404},
		{New(ErrCodeNetwork, "x"), 502},
		{New(ErrCodeUnsupported, "x"), 501},
		{errors.New("x"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
