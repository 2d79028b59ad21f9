package router

// DefaultContentTypes используется, если MessageOptions.ContentTypes пуст
var DefaultContentTypes = []string{"text"}

// MessageOptions перечисляет параметры регистрации обработчика сообщений
type MessageOptions struct {
	// Name используется в логах; по умолчанию имя функции
	Name string

	Commands     []string
	Predicate    MessagePredicate
	ContentTypes []string

	// Regexp сопоставляется с текстом или подписью сообщения
	Regexp string

	// ChatTypes ограничивает типы чатов: private, group, supergroup, channel
	ChatTypes []string

	// Description попадает в меню команд бота
	Description string
}

// CallbackOptions перечисляет параметры регистрации обработчика callback query
type CallbackOptions struct {
	Name      string
	Predicate CallbackPredicate
}

// HandlerCounts содержит количество зарегистрированных обработчиков
type HandlerCounts struct {
	Message  int `json:"message_handlers"`
	Callback int `json:"callback_handlers"`
}

// Total возвращает общее количество обработчиков
func (c HandlerCounts) Total() int {
	return c.Message + c.Callback
}
