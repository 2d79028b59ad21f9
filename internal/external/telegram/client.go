// Package telegram содержит клиент Telegram Bot API, к которому
// привязываются обработчики роутера.
package telegram

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"tgrouter/internal/domain/types"
	"tgrouter/internal/middleware"
	"tgrouter/internal/router"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Options параметры long polling
type Options struct {
	PollTimeout        int
	DropPendingUpdates bool
	ReconnectDelay     time.Duration
	AllowedUpdates     []string
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		PollTimeout:        60,
		DropPendingUpdates: true,
		ReconnectDelay:     10 * time.Second,
		AllowedUpdates:     []string{"message", "callback_query"},
	}
}

// Client представляет клиент Telegram Bot API
type Client struct {
	api         API
	username    string
	opts        Options
	logger      *zap.Logger
	metrics     *Metrics
	middlewares []middleware.Middleware
	messages    []*messageRoute
	callbacks   []*callbackRoute
	mu          sync.RWMutex
}

var _ router.Bot = (*Client)(nil)

// NewClient создает клиент по токену бота
func NewClient(botToken string, debug bool, opts Options, logger *zap.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = debug
	logger.Info("Telegram bot created", zap.String("username", bot.Self.UserName))

	return New(bot, bot.Self.UserName, opts, logger), nil
}

// New создает клиент поверх готового API
func New(api API, username string, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		api:      api,
		username: username,
		opts:     opts,
		logger:   logger,
		metrics:  NewMetrics(),
	}
}

// Metrics возвращает метрики обработки
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// Use добавляет middleware, через которые Start передает обновления
func (c *Client) Use(mw ...middleware.Middleware) {
	c.mu.Lock()
	c.middlewares = append(c.middlewares, mw...)
	c.mu.Unlock()
}

// Send отправляет сообщение
func (c *Client) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

// Request выполняет запрос к Bot API
func (c *Client) Request(req tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(req)
}

// MessageHandler регистрирует обработчик сообщений.
// Без ContentTypes маршрут принимает только текст, как и команды.
func (c *Client) MessageHandler(filter router.MessageFilter, handler router.MessageFunc) {
	contentTypes := filter.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = router.DefaultContentTypes
	}

	route := &messageRoute{
		key:          routeKey(filter),
		commands:     slices.Clone(filter.Commands),
		predicate:    filter.Predicate,
		contentTypes: slices.Clone(contentTypes),
		chatTypes:    slices.Clone(filter.ChatTypes),
		handler:      handler,
	}

	if filter.Regexp != "" {
		pattern, err := regexp.Compile(filter.Regexp)
		if err != nil {
			c.logger.Error("Invalid handler regexp, route disabled",
				zap.String("route", route.key),
				zap.String("regexp", filter.Regexp),
				zap.Error(err))
			route.invalid = true
		}
		route.pattern = pattern
	}

	c.mu.Lock()
	c.messages = append(c.messages, route)
	c.mu.Unlock()
}

// CallbackQueryHandler регистрирует обработчик callback query
func (c *Client) CallbackQueryHandler(predicate router.CallbackPredicate, handler router.CallbackFunc) {
	key := "callback"
	if predicate != nil {
		key = "callback:predicate"
	}

	c.mu.Lock()
	c.callbacks = append(c.callbacks, &callbackRoute{key: key, predicate: predicate, handler: handler})
	c.mu.Unlock()
}

// SetCommands публикует меню команд бота
func (c *Client) SetCommands(commands []tgbotapi.BotCommand) error {
	if len(commands) == 0 {
		return nil
	}

	if _, err := c.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	c.logger.Info("Bot commands set", zap.Int("count", len(commands)))
	return nil
}

// HandleUpdate передает обновление первому подходящему обработчику
func (c *Client) HandleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in HandleUpdate", zap.Int("update_id", update.UpdateID), zap.Any("panic", r))
			err = types.NewBotError(types.ErrCodePanic, "update dispatch panicked", fmt.Errorf("panic: %v", r))
		}
	}()

	c.logger.Debug("Processing update",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", getUserID(update)),
		zap.String("update_type", getUpdateType(update)))

	switch {
	case update.Message != nil:
		return c.dispatchMessage(ctx, update.UpdateID, update.Message)
	case update.CallbackQuery != nil:
		return c.dispatchCallback(ctx, update.UpdateID, update.CallbackQuery)
	default:
		return nil
	}
}

func (c *Client) dispatchMessage(ctx context.Context, updateID int, msg *tgbotapi.Message) error {
	c.mu.RLock()
	routes := slices.Clone(c.messages)
	c.mu.RUnlock()

	for _, route := range routes {
		if !route.matches(msg, c.username) {
			continue
		}

		start := time.Now()
		err := route.handler(ctx, msg)
		c.metrics.observe(route.key, time.Since(start), err != nil)

		if err != nil {
			c.logger.Error("Message handler returned error",
				zap.Int("update_id", updateID),
				zap.String("route", route.key),
				zap.String("user", getUserIdentifier(msg.From)),
				zap.Error(err))
		}
		return err
	}

	c.logger.Debug("No handler matched message",
		zap.Int("update_id", updateID),
		zap.String("content_type", ContentType(msg)))
	return nil
}

func (c *Client) dispatchCallback(ctx context.Context, updateID int, query *tgbotapi.CallbackQuery) error {
	c.mu.RLock()
	routes := slices.Clone(c.callbacks)
	c.mu.RUnlock()

	for _, route := range routes {
		if route.predicate != nil && !route.predicate(query) {
			continue
		}

		start := time.Now()
		err := route.handler(ctx, query)
		c.metrics.observe(route.key, time.Since(start), err != nil)

		if err != nil {
			c.logger.Error("Callback handler returned error",
				zap.Int("update_id", updateID),
				zap.String("data", query.Data),
				zap.String("user", getUserIdentifier(query.From)),
				zap.Error(err))
		}
		return err
	}

	c.logger.Debug("No handler matched callback", zap.Int("update_id", updateID), zap.String("data", query.Data))
	return nil
}

// Start запускает long polling и обрабатывает обновления до отмены контекста
func (c *Client) Start(ctx context.Context) error {
	c.logger.Info("Bot started", zap.String("username", c.username))

	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: c.opts.DropPendingUpdates}); err != nil {
		c.logger.Error("Failed to delete webhook", zap.Error(err))
		return types.NewBotError(types.ErrCodePollingStart, "failed to delete webhook", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.opts.PollTimeout
	u.AllowedUpdates = c.opts.AllowedUpdates

	c.mu.RLock()
	handle := middleware.Chain(c.HandleUpdate, c.middlewares...)
	c.mu.RUnlock()

	c.logger.Info("Starting to fetch updates")
	updates := c.api.GetUpdatesChan(u)
	if updates == nil {
		return types.NewBotError(types.ErrCodePollingStart, "failed to create updates channel", nil)
	}

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			c.logger.Info("Update loop cancelled by context")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.logger.Warn("Update channel closed")
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(c.opts.ReconnectDelay):
					return types.ErrUpdatesClosed
				}
			}

			// ошибка уже залогирована, цикл продолжается
			_ = handle(ctx, update)
		}
	}
}

// getUserID извлекает ID пользователя из обновления
func getUserID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

// getUpdateType определяет тип обновления
func getUpdateType(update tgbotapi.Update) string {
	if update.Message != nil {
		if update.Message.IsCommand() {
			return "command"
		}
		return "message"
	}
	if update.CallbackQuery != nil {
		return "callback"
	}
	return "unknown"
}

// getUserIdentifier возвращает идентификатор пользователя
func getUserIdentifier(user *tgbotapi.User) string {
	if user == nil {
		return "unknown"
	}

	if user.UserName != "" {
		return "@" + user.UserName
	}

	if user.FirstName != "" {
		if user.LastName != "" {
			return user.FirstName + " " + user.LastName
		}
		return user.FirstName
	}

	return fmt.Sprintf("user_%d", user.ID)
}
