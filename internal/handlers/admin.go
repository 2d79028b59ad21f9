package handlers

import (
	"context"
	"fmt"

	"tgrouter/internal/router"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AdminRouter собирает команды администратора
func (h *Handlers) AdminRouter() *router.Router {
	r := router.New("admin", h.logger)

	r.MessageWithBot(router.MessageOptions{
		Name:      "stats",
		Commands:  []string{"stats"},
		Predicate: h.isAdmin,
		ChatTypes: []string{"private"},
	}, h.Stats)

	return r
}

// Stats отправляет статистику реестра
func (h *Handlers) Stats(_ context.Context, bot router.Bot, msg *tgbotapi.Message) error {
	if h.stats == nil {
		return reply(bot, msg, "Stats are not available")
	}

	s := h.stats()
	text := fmt.Sprintf("Bots: %d\nHandlers: %d\nMessage handlers: %d\nCallback handlers: %d",
		s.TotalBots, s.TotalHandlers, s.Handlers.Message, s.Handlers.Callback)
	return reply(bot, msg, text)
}
