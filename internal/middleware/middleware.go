// Package middleware содержит middleware для обработки обновлений.
package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler обрабатывает одно обновление
type UpdateHandler func(ctx context.Context, update tgbotapi.Update) error

// Middleware оборачивает UpdateHandler
type Middleware func(next UpdateHandler) UpdateHandler

// Chain оборачивает handler в middleware; первый в списке выполняется первым
func Chain(handler UpdateHandler, middlewares ...Middleware) UpdateHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		handler = middlewares[i](handler)
	}
	return handler
}
