package middleware

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Logging логирует входящие обновления и время их обработки
func Logging(logger *zap.Logger) Middleware {
	return func(next UpdateHandler) UpdateHandler {
		return func(ctx context.Context, update tgbotapi.Update) error {
			start := time.Now()
			requestID := fmt.Sprintf("%d-%d", update.UpdateID, start.UnixNano())

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int("update_id", update.UpdateID),
			}
			switch {
			case update.Message != nil:
				fields = append(fields, zap.String("command", update.Message.Command()))
				if update.Message.Chat != nil {
					fields = append(fields, zap.Int64("chat_id", update.Message.Chat.ID))
				}
			case update.CallbackQuery != nil:
				fields = append(fields, zap.String("callback_data", update.CallbackQuery.Data))
			}

			logger.Info("Processing update", fields...)

			err := next(ctx, update)

			fields = append(fields, zap.Duration("duration", time.Since(start)))
			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
				return err
			}

			logger.Info("Update completed", fields...)
			return nil
		}
	}
}
