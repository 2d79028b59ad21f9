// Package router собирает обработчики сообщений и callback query
// и привязывает их к клиенту Telegram-бота.
package router

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"tgrouter/internal/domain/types"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	kindMessage  = "message"
	kindCallback = "callback"
)

// Router хранит упорядоченные списки обработчиков, еще не привязанных к боту
type Router struct {
	name      string
	messages  []*MessageRecord
	callbacks []*CallbackRecord
	logger    *zap.Logger
	mu        sync.RWMutex
}

// New создает новый роутер. Имя используется только в логах.
func New(name string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Router{
		name:   name,
		logger: logger.With(zap.String("router", name)),
	}
	r.logger.Info("Router created")
	return r
}

// Name возвращает имя роутера
func (r *Router) Name() string {
	return r.name
}

// Message добавляет обработчик сообщений и возвращает его без изменений
func (r *Router) Message(opts MessageOptions, handler MessageFunc) MessageFunc {
	if handler == nil {
		r.logger.Warn("Nil message handler ignored", zap.Strings("commands", opts.Commands))
		return nil
	}

	call := func(ctx context.Context, _ Bot, msg *tgbotapi.Message) error {
		return handler(ctx, msg)
	}
	r.addMessage(newMessageRecord(opts, call, false, handler))
	return handler
}

// MessageWithBot добавляет обработчик сообщений, которому передается бот
func (r *Router) MessageWithBot(opts MessageOptions, handler MessageBotFunc) MessageBotFunc {
	if handler == nil {
		r.logger.Warn("Nil message handler ignored", zap.Strings("commands", opts.Commands))
		return nil
	}

	r.addMessage(newMessageRecord(opts, handler, true, handler))
	return handler
}

// Callback добавляет обработчик callback query и возвращает его без изменений
func (r *Router) Callback(opts CallbackOptions, handler CallbackFunc) CallbackFunc {
	if handler == nil {
		r.logger.Warn("Nil callback handler ignored")
		return nil
	}

	call := func(ctx context.Context, _ Bot, query *tgbotapi.CallbackQuery) error {
		return handler(ctx, query)
	}
	r.addCallback(newCallbackRecord(opts, call, false, handler))
	return handler
}

// CallbackWithBot добавляет обработчик callback query, которому передается бот
func (r *Router) CallbackWithBot(opts CallbackOptions, handler CallbackBotFunc) CallbackBotFunc {
	if handler == nil {
		r.logger.Warn("Nil callback handler ignored")
		return nil
	}

	r.addCallback(newCallbackRecord(opts, handler, true, handler))
	return handler
}

func (r *Router) addMessage(rec *MessageRecord) {
	r.mu.Lock()
	r.messages = append(r.messages, rec)
	r.mu.Unlock()

	r.logger.Debug("Message handler added",
		zap.String("handler", rec.name),
		zap.Strings("commands", rec.commands),
		zap.Bool("with_bot", rec.withBot))
}

func (r *Router) addCallback(rec *CallbackRecord) {
	r.mu.Lock()
	r.callbacks = append(r.callbacks, rec)
	r.mu.Unlock()

	r.logger.Debug("Callback handler added",
		zap.String("handler", rec.name),
		zap.Bool("with_bot", rec.withBot))
}

// Include добавляет в конец обработчики другого роутера, сохраняя порядок.
// Записи разделяются по ссылке, other не изменяется.
func (r *Router) Include(other *Router) {
	if other == nil {
		return
	}

	messages, callbacks := other.snapshot()

	r.mu.Lock()
	r.messages = append(r.messages, messages...)
	r.callbacks = append(r.callbacks, callbacks...)
	r.mu.Unlock()

	r.logger.Info("Router included",
		zap.String("included", other.name),
		zap.Int("message_handlers", len(messages)),
		zap.Int("callback_handlers", len(callbacks)))
}

// Register привязывает все обработчики к боту
func (r *Router) Register(bot Bot) {
	messages, callbacks := r.snapshot()

	for _, rec := range messages {
		bot.MessageHandler(rec.filter(), r.wrapMessage(rec, bot))
	}

	for _, rec := range callbacks {
		bot.CallbackQueryHandler(rec.predicate, r.wrapCallback(rec, bot))
	}

	r.logger.Info("Router registered",
		zap.Int("message_handlers", len(messages)),
		zap.Int("callback_handlers", len(callbacks)))
}

// HandlerCounts возвращает количество обработчиков
func (r *Router) HandlerCounts() HandlerCounts {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return HandlerCounts{
		Message:  len(r.messages),
		Callback: len(r.callbacks),
	}
}

// MessageRecords возвращает копию списка обработчиков сообщений
func (r *Router) MessageRecords() []*MessageRecord {
	messages, _ := r.snapshot()
	return messages
}

// CallbackRecords возвращает копию списка обработчиков callback query
func (r *Router) CallbackRecords() []*CallbackRecord {
	_, callbacks := r.snapshot()
	return callbacks
}

// BotCommands возвращает команды с описанием для меню бота
func (r *Router) BotCommands() []tgbotapi.BotCommand {
	messages, _ := r.snapshot()

	seen := make(map[string]bool)
	var commands []tgbotapi.BotCommand
	for _, rec := range messages {
		if rec.description == "" {
			continue
		}
		for _, cmd := range rec.commands {
			if seen[cmd] {
				continue
			}
			seen[cmd] = true
			commands = append(commands, tgbotapi.BotCommand{
				Command:     cmd,
				Description: rec.description,
			})
		}
	}

	return commands
}

// Clear удаляет все обработчики
func (r *Router) Clear() {
	r.mu.Lock()
	r.messages = nil
	r.callbacks = nil
	r.mu.Unlock()

	r.logger.Info("Router handlers cleared")
}

func (r *Router) snapshot() ([]*MessageRecord, []*CallbackRecord) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.messages), slices.Clone(r.callbacks)
}

// wrapMessage создает функцию, которую бот вызывает для сообщения
func (r *Router) wrapMessage(rec *MessageRecord, bot Bot) MessageFunc {
	return func(ctx context.Context, msg *tgbotapi.Message) (err error) {
		if rec.predicate != nil && !rec.predicate(msg) {
			return nil
		}

		defer func() {
			if p := recover(); p != nil {
				err = r.handlerFailed(kindMessage, rec.name, panicError(p))
			}
		}()

		if herr := rec.handler(ctx, bot, msg); herr != nil {
			return r.handlerFailed(kindMessage, rec.name, herr)
		}
		return nil
	}
}

// wrapCallback создает функцию, которую бот вызывает для callback query
func (r *Router) wrapCallback(rec *CallbackRecord, bot Bot) CallbackFunc {
	return func(ctx context.Context, query *tgbotapi.CallbackQuery) (err error) {
		if rec.predicate != nil && !rec.predicate(query) {
			return nil
		}

		defer func() {
			if p := recover(); p != nil {
				err = r.handlerFailed(kindCallback, rec.name, panicError(p))
			}
		}()

		if herr := rec.handler(ctx, bot, query); herr != nil {
			return r.handlerFailed(kindCallback, rec.name, herr)
		}
		return nil
	}
}

// handlerFailed логирует ошибку обработчика и возвращает ее вызывающему
func (r *Router) handlerFailed(kind, name string, err error) error {
	r.logger.Error("Handler failed",
		zap.String("kind", kind),
		zap.String("handler", name),
		zap.Error(err))

	return types.NewHandlerError(kind, name, err)
}

func panicError(p any) error {
	return types.NewBotError(types.ErrCodePanic, "handler panicked", fmt.Errorf("panic: %v", p))
}
