package router

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessagePredicate решает, подходит ли обработчик для сообщения
type MessagePredicate func(msg *tgbotapi.Message) bool

// CallbackPredicate решает, подходит ли обработчик для callback query
type CallbackPredicate func(query *tgbotapi.CallbackQuery) bool

// MessageFunc обрабатывает сообщение
type MessageFunc func(ctx context.Context, msg *tgbotapi.Message) error

// MessageBotFunc обрабатывает сообщение и получает бота, к которому привязан роутер
type MessageBotFunc func(ctx context.Context, bot Bot, msg *tgbotapi.Message) error

// CallbackFunc обрабатывает callback query
type CallbackFunc func(ctx context.Context, query *tgbotapi.CallbackQuery) error

// CallbackBotFunc обрабатывает callback query и получает бота
type CallbackBotFunc func(ctx context.Context, bot Bot, query *tgbotapi.CallbackQuery) error

// MessageFilter описывает условия, с которыми обработчик регистрируется в боте.
// Пустые поля не участвуют в сопоставлении.
type MessageFilter struct {
	Commands     []string
	Predicate    MessagePredicate
	ContentTypes []string
	Regexp       string
	ChatTypes    []string
}

// Sender отправляет запросы в Telegram Bot API
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot определяет контракт клиента бота, к которому привязываются обработчики.
// Registry принимает только указатели: адрес бота служит его идентичностью
// при защите от повторной регистрации.
type Bot interface {
	Sender

	// MessageHandler регистрирует обработчик сообщений с фильтром
	MessageHandler(filter MessageFilter, handler MessageFunc)

	// CallbackQueryHandler регистрирует обработчик callback query; nil predicate принимает все
	CallbackQueryHandler(predicate CallbackPredicate, handler CallbackFunc)
}
