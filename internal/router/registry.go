package router

import (
	"fmt"
	"reflect"
	"sync"

	"tgrouter/internal/domain/types"

	"go.uber.org/zap"
)

// GlobalRouterName имя роутера, которым владеет Registry
const GlobalRouterName = "global"

// Stats содержит статистику Registry
type Stats struct {
	TotalBots     int           `json:"total_bots"`
	TotalHandlers int           `json:"total_handlers"`
	Handlers      HandlerCounts `json:"handlers"`
}

// botKey идентичность бота: динамический тип и адрес
type botKey struct {
	typ reflect.Type
	ptr uintptr
}

// Registry собирает обработчики нескольких роутеров и привязывает их к ботам.
// Каждый бот регистрируется не более одного раза.
type Registry struct {
	router *Router
	bots   map[botKey]struct{}
	logger *zap.Logger
	mu     sync.Mutex
}

// NewRegistry создает новый реестр
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := &Registry{
		router: New(GlobalRouterName, logger),
		bots:   make(map[botKey]struct{}),
		logger: logger.With(zap.String("component", "registry")),
	}
	reg.logger.Info("Registry initialized")
	return reg
}

// Router возвращает роутер реестра
func (g *Registry) Router() *Router {
	return g.router
}

// Message добавляет глобальный обработчик сообщений
func (g *Registry) Message(opts MessageOptions, handler MessageFunc) MessageFunc {
	h := g.router.Message(opts, handler)
	if h != nil {
		g.logger.Info("Global message handler added", zap.String("handler", handlerName(opts.Name, handler)))
	}
	return h
}

// MessageWithBot добавляет глобальный обработчик сообщений, которому передается бот
func (g *Registry) MessageWithBot(opts MessageOptions, handler MessageBotFunc) MessageBotFunc {
	h := g.router.MessageWithBot(opts, handler)
	if h != nil {
		g.logger.Info("Global message handler added", zap.String("handler", handlerName(opts.Name, handler)))
	}
	return h
}

// Callback добавляет глобальный обработчик callback query
func (g *Registry) Callback(opts CallbackOptions, handler CallbackFunc) CallbackFunc {
	h := g.router.Callback(opts, handler)
	if h != nil {
		g.logger.Info("Global callback handler added", zap.String("handler", handlerName(opts.Name, handler)))
	}
	return h
}

// CallbackWithBot добавляет глобальный обработчик callback query, которому передается бот
func (g *Registry) CallbackWithBot(opts CallbackOptions, handler CallbackBotFunc) CallbackBotFunc {
	h := g.router.CallbackWithBot(opts, handler)
	if h != nil {
		g.logger.Info("Global callback handler added", zap.String("handler", handlerName(opts.Name, handler)))
	}
	return h
}

// IncludeRouter добавляет обработчики роутера в реестр
func (g *Registry) IncludeRouter(r *Router) {
	g.router.Include(r)
	if r != nil {
		g.logger.Info("Router added to registry", zap.String("included", r.Name()))
	}
}

// RegisterBot привязывает обработчики реестра к боту.
// Повторная регистрация того же бота только логируется.
func (g *Registry) RegisterBot(bot Bot) error {
	if bot == nil || isNilPointer(bot) {
		return types.NewBotError(types.ErrCodeInvalidBot, "cannot register bot", types.ErrNilBot)
	}
	key, ok := identityOf(bot)
	if !ok {
		return types.NewBotError(types.ErrCodeInvalidBot,
			fmt.Sprintf("cannot register bot of type %T", bot), types.ErrBotNotComparable)
	}

	// обработчики привязываются без блокировки: бот может обратиться к Stats
	g.mu.Lock()
	_, seen := g.bots[key]
	if !seen {
		g.bots[key] = struct{}{}
	}
	g.mu.Unlock()

	if seen {
		g.logger.Warn("Bot already registered", zap.String("bot", botID(bot)))
		return nil
	}

	g.router.Register(bot)
	g.logger.Info("Bot registered", zap.String("bot", botID(bot)))
	return nil
}

func isNilPointer(bot Bot) bool {
	v := reflect.ValueOf(bot)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// identityOf возвращает идентичность бота по ссылке; боты-значения не поддерживаются
func identityOf(bot Bot) (botKey, bool) {
	v := reflect.ValueOf(bot)
	if v.Kind() != reflect.Ptr {
		return botKey{}, false
	}
	return botKey{typ: v.Type(), ptr: v.Pointer()}, true
}

// Stats возвращает статистику реестра
func (g *Registry) Stats() Stats {
	g.mu.Lock()
	totalBots := len(g.bots)
	g.mu.Unlock()

	counts := g.router.HandlerCounts()
	return Stats{
		TotalBots:     totalBots,
		TotalHandlers: counts.Total(),
		Handlers:      counts,
	}
}

// botID возвращает строковую идентичность бота для логов; bot указатель
func botID(bot Bot) string {
	return fmt.Sprintf("%T@%#x", bot, reflect.ValueOf(bot).Pointer())
}
