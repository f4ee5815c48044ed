package errors

import (
	stderrors "errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "negative vertex count: %d", -3)
	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidGraph)
	}
	want := "INVALID_GRAPH: negative vertex count: -3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch %s", "brock200_2.clq")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error must match its cause via errors.Is")
	}
	if !Is(err, ErrCodeNetwork) {
		t.Error("Is(err, ErrCodeNetwork) = false")
	}
	if Is(err, ErrCodeTimeout) {
		t.Error("Is(err, ErrCodeTimeout) = true for a network error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRunNotFound, "no such run")); got != ErrCodeRunNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeRunNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "trials must be positive")
	if got := UserMessage(err); got != "trials must be positive" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
