package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestBotError(t *testing.T) {
	err := NewBotError("TEST_CODE", "test message", errors.New("cause"))

	if err.Code != "TEST_CODE" {
		t.Errorf("Expected code 'TEST_CODE', got '%s'", err.Code)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message 'test message', got '%s'", err.Message)
	}

	if err.Unwrap() == nil {
		t.Error("Expected unwrapped error, got nil")
	}

	expected := "TEST_CODE: test message (cause)"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}

	if NewBotError("X", "no cause", nil).Error() != "X: no cause" {
		t.Error("Expected error string without cause")
	}
}

func TestHandlerError(t *testing.T) {
	cause := errors.New("boom")
	err := NewHandlerError("message", "start", cause)

	expected := "message handler start failed: boom"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestIsHandlerError(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", NewHandlerError("callback", "cb", errors.New("test")))

	if !IsHandlerError(err) {
		t.Error("Expected IsHandlerError to return true for wrapped HandlerError")
	}

	if IsHandlerError(errors.New("regular error")) {
		t.Error("Expected IsHandlerError to return false for regular error")
	}
}

func TestIsBotError(t *testing.T) {
	err := NewBotError("TEST", "test", nil)

	if !IsBotError(err) {
		t.Error("Expected IsBotError to return true for BotError")
	}

	if IsBotError(errors.New("regular error")) {
		t.Error("Expected IsBotError to return false for regular error")
	}
}
