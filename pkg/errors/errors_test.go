package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNode, "node %q not found", "app.div")

	if err.Code != ErrCodeUnknownNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownNode)
	}

	if err.Message != `node "app.div" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `node "app.div" not found`)
	}

	expected := `UNKNOWN_NODE: node "app.div" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "parse markup")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_FORMAT: parse markup: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDuplicateNodeID, "test"),
			code:     ErrCodeDuplicateNodeID,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDuplicateNodeID, "test"),
			code:     ErrCodeUnknownParent,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeMalformedStyleUnit, "inner"), "outer"),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeCycleDetected, "test"), ErrCodeCycleDetected},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
		{"wrapped chain", Wrap(ErrCodeFileNotFound, New(ErrCodeFileNotFound, "file not found: app.xml"), "load"), "load: file not found: app.xml"},
		{"wrapped plain", Wrap(ErrCodeInvalidFormat, errors.New("unexpected EOF"), "parse app.css"), "parse app.css: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsCallerError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeDuplicateNodeID, "x"), true},
		{New(ErrCodeUnknownParent, "x"), true},
		{New(ErrCodeUnknownNode, "x"), true},
		{New(ErrCodeMalformedStyleUnit, "x"), true},
		{New(ErrCodeCycleDetected, "x"), true},
		{New(ErrCodeInternal, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsCallerError(tt.err); got != tt.want {
			t.Errorf("IsCallerError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestInternalPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Internal() did not panic")
		}
		err, ok := r.(*Error)
		if !ok {
			t.Fatalf("panic value = %T, want *Error", r)
		}
		if err.Code != ErrCodeInternal {
			t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
		}
	}()
	Internal("edge %s -> %s has no child record", "a", "b")
}
