package handlers

import (
	"context"
	"fmt"
	"strings"

	"tgrouter/internal/router"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = "Available commands:\n" +
	"/start - Start the bot\n" +
	"/help - Show this message\n" +
	"Any other text is echoed back."

const aboutText = "Handlers are collected in routers and bound to the bot at startup."

// UserRouter собирает пользовательские обработчики
func (h *Handlers) UserRouter() *router.Router {
	r := router.New("user", h.logger)

	r.MessageWithBot(router.MessageOptions{
		Name:        "start",
		Commands:    []string{"start"},
		Description: "Start the bot",
	}, h.Start)

	r.Message(router.MessageOptions{
		Name:        "help",
		Commands:    []string{"help"},
		Description: "Show help",
	}, h.Help)

	r.CallbackWithBot(router.CallbackOptions{
		Name:      "menu",
		Predicate: isMenuCallback,
	}, h.Menu)

	return r
}

// FallbackRouter собирает обработчики, которые должны идти последними
func (h *Handlers) FallbackRouter() *router.Router {
	r := router.New("fallback", h.logger)

	r.Message(router.MessageOptions{
		Name:      "echo",
		ChatTypes: []string{"private"},
		Predicate: func(msg *tgbotapi.Message) bool { return !msg.IsCommand() },
	}, h.Echo)

	r.Message(router.MessageOptions{
		Name:      "unknown",
		Predicate: func(msg *tgbotapi.Message) bool { return msg.IsCommand() },
	}, h.Unknown)

	return r
}

// Start отвечает приветствием с клавиатурой меню
func (h *Handlers) Start(_ context.Context, bot router.Bot, msg *tgbotapi.Message) error {
	name := "there"
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Hello, %s! Choose an option:", name))
	out.ReplyMarkup = menuKeyboard()
	if _, err := bot.Send(out); err != nil {
		return fmt.Errorf("failed to send start message: %w", err)
	}
	return nil
}

// Help отправляет список команд
func (h *Handlers) Help(_ context.Context, msg *tgbotapi.Message) error {
	if err := reply(h.sender, msg, helpText); err != nil {
		return fmt.Errorf("failed to send help: %w", err)
	}
	return nil
}

// Echo повторяет текст пользователя
func (h *Handlers) Echo(_ context.Context, msg *tgbotapi.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	return reply(h.sender, msg, text)
}

// Unknown отвечает на неизвестную команду
func (h *Handlers) Unknown(_ context.Context, msg *tgbotapi.Message) error {
	h.logger.Warn("Unknown command", zap.String("command", msg.Command()), zap.Int64("chat_id", msg.Chat.ID))
	return reply(h.sender, msg, "Unknown command. Use /help")
}

// Menu обрабатывает нажатия кнопок меню
func (h *Handlers) Menu(_ context.Context, bot router.Bot, q *tgbotapi.CallbackQuery) error {
	if _, err := bot.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}

	if q.Message == nil {
		return nil
	}

	var text string
	switch strings.TrimPrefix(q.Data, menuPrefix) {
	case "help":
		text = helpText
	case "about":
		text = aboutText
	default:
		h.logger.Warn("Unknown menu item", zap.String("data", q.Data))
		return nil
	}

	if _, err := bot.Send(tgbotapi.NewMessage(q.Message.Chat.ID, text)); err != nil {
		return fmt.Errorf("failed to send menu reply: %w", err)
	}
	return nil
}
