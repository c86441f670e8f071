package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := New(ErrCodeOutOfRange, "value %v not in log domain", -3.0)
	want := "OUT_OF_RANGE: value -3 not in log domain"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "solving layout")
	want := "INTERNAL_ERROR: solving layout: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUninitialized, "scale %q has no resolved range", "x")

	if !Is(err, ErrCodeUninitialized) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(err, ErrCodeOutOfRange) {
		t.Error("Is() = true for non-matching code, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeUninitialized) {
		t.Error("Is() = true for plain error, want false")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(ErrCodeDegenerateDimension, "plot width is zero")
	outer := fmt.Errorf("query failed: %w", inner)

	if !Is(outer, ErrCodeDegenerateDimension) {
		t.Error("Is() should find code through wrapped chain")
	}
	if got := GetCode(outer); got != ErrCodeDegenerateDimension {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeDegenerateDimension)
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfiguration, "scale \"a\" references itself")
	if got := UserMessage(err); got != "scale \"a\" references itself" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeInvalidConfiguration, "bad parent chain")) {
		t.Error("configuration errors are fatal")
	}
	if IsFatal(New(ErrCodeOutOfRange, "log of negative")) {
		t.Error("per-query errors are recoverable, not fatal")
	}
}
