package router

import (
	"sync"

	"go.uber.org/zap"
)

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default возвращает реестр процесса. Создается при первом вызове с zap.L(),
// поэтому zap.ReplaceGlobals нужно вызвать раньше.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(zap.L())
	})
	return defaultRegistry
}

// HandleMessage добавляет обработчик сообщений в Default()
func HandleMessage(opts MessageOptions, handler MessageFunc) MessageFunc {
	return Default().Message(opts, handler)
}

// HandleMessageWithBot добавляет обработчик сообщений с ботом в Default()
func HandleMessageWithBot(opts MessageOptions, handler MessageBotFunc) MessageBotFunc {
	return Default().MessageWithBot(opts, handler)
}

// HandleCallback добавляет обработчик callback query в Default()
func HandleCallback(opts CallbackOptions, handler CallbackFunc) CallbackFunc {
	return Default().Callback(opts, handler)
}

// HandleCallbackWithBot добавляет обработчик callback query с ботом в Default()
func HandleCallbackWithBot(opts CallbackOptions, handler CallbackBotFunc) CallbackBotFunc {
	return Default().CallbackWithBot(opts, handler)
}

// IncludeRouter добавляет роутер в Default()
func IncludeRouter(r *Router) {
	Default().IncludeRouter(r)
}

// RegisterBot привязывает обработчики Default() к боту
func RegisterBot(bot Bot) error {
	return Default().RegisterBot(bot)
}

// GlobalStats возвращает статистику Default()
func GlobalStats() Stats {
	return Default().Stats()
}
