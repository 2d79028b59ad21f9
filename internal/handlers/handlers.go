// Package handlers содержит обработчики команд бота, собранные в роутеры.
package handlers

import (
	"strings"

	"tgrouter/internal/router"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// StatsFunc возвращает статистику реестра
type StatsFunc func() router.Stats

// Handlers содержит зависимости обработчиков
type Handlers struct {
	sender        router.Sender
	adminUsername string
	stats         StatsFunc
	logger        *zap.Logger
}

// New создает обработчики. sender используется обработчиками без параметра бота.
func New(sender router.Sender, adminUsername string, stats StatsFunc, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handlers{
		sender:        sender,
		adminUsername: strings.TrimPrefix(adminUsername, "@"),
		stats:         stats,
		logger:        logger,
	}
}

// isAdmin проверяет, что сообщение отправил администратор
func (h *Handlers) isAdmin(msg *tgbotapi.Message) bool {
	return msg.From != nil && h.adminUsername != "" && strings.EqualFold(msg.From.UserName, h.adminUsername)
}

// reply отправляет ответ в чат сообщения
func reply(sender router.Sender, msg *tgbotapi.Message, text string) error {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	_, err := sender.Send(out)
	return err
}
