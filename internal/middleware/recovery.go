package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"tgrouter/internal/domain/types"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Recovery превращает панику в ошибку, чтобы цикл обновлений продолжал работу
func Recovery(logger *zap.Logger) Middleware {
	return func(next UpdateHandler) UpdateHandler {
		return func(ctx context.Context, update tgbotapi.Update) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic recovered",
						zap.Int("update_id", update.UpdateID),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
					err = types.NewBotError(types.ErrCodePanic, "update handler panicked", fmt.Errorf("panic: %v", r))
				}
			}()

			return next(ctx, update)
		}
	}
}
