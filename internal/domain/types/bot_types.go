// Package types содержит общие типы ошибок роутера и бота.
package types

import (
	"errors"
	"fmt"
)

// Стандартные ошибки
var (
	ErrNilBot           = errors.New("bot is nil")
	ErrBotNotComparable = errors.New("bot has no reference identity")
	ErrUpdatesClosed    = errors.New("updates channel closed")
)

// Error codes для BotError
const (
	ErrCodeInvalidBot   = "INVALID_BOT"
	ErrCodePanic        = "PANIC"
	ErrCodePollingStart = "POLLING_START"
)

// BotError представляет ошибку бота с контекстом
type BotError struct {
	Code    string
	Message string
	Err     error
}

func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BotError) Unwrap() error {
	return e.Err
}

// NewBotError создает новую ошибку бота
func NewBotError(code, message string, err error) *BotError {
	return &BotError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsBotError проверяет, является ли ошибка BotError
func IsBotError(err error) bool {
	var be *BotError
	return errors.As(err, &be)
}

// HandlerError представляет ошибку, возвращенную зарегистрированным обработчиком
type HandlerError struct {
	Handler string
	Kind    string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler %s failed: %v", e.Kind, e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// NewHandlerError создает новую ошибку обработчика
func NewHandlerError(kind, handler string, err error) *HandlerError {
	return &HandlerError{
		Handler: handler,
		Kind:    kind,
		Err:     err,
	}
}

// IsHandlerError проверяет, является ли ошибка HandlerError
func IsHandlerError(err error) bool {
	var he *HandlerError
	return errors.As(err, &he)
}
