package router

import (
	"reflect"
	"runtime"
	"slices"
	"strings"
)

// MessageRecord хранит регистрацию обработчика сообщений.
// После создания не изменяется.
type MessageRecord struct {
	name         string
	handler      MessageBotFunc
	withBot      bool
	commands     []string
	predicate    MessagePredicate
	contentTypes []string
	regexp       string
	chatTypes    []string
	description  string
}

func newMessageRecord(opts MessageOptions, handler MessageBotFunc, withBot bool, fn any) *MessageRecord {
	contentTypes := opts.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = DefaultContentTypes
	}

	return &MessageRecord{
		name:         handlerName(opts.Name, fn),
		handler:      handler,
		withBot:      withBot,
		commands:     slices.Clone(opts.Commands),
		predicate:    opts.Predicate,
		contentTypes: slices.Clone(contentTypes),
		regexp:       opts.Regexp,
		chatTypes:    slices.Clone(opts.ChatTypes),
		description:  opts.Description,
	}
}

// Name возвращает имя обработчика
func (r *MessageRecord) Name() string { return r.name }

// WithBot сообщает, получает ли обработчик бота
func (r *MessageRecord) WithBot() bool { return r.withBot }

// Commands возвращает копию списка команд
func (r *MessageRecord) Commands() []string { return slices.Clone(r.commands) }

// ContentTypes возвращает копию списка типов контента
func (r *MessageRecord) ContentTypes() []string { return slices.Clone(r.contentTypes) }

// filter строит фильтр для бота: команды и предикат важнее типов контента
func (r *MessageRecord) filter() MessageFilter {
	f := MessageFilter{
		Regexp:    r.regexp,
		ChatTypes: slices.Clone(r.chatTypes),
	}

	switch {
	case len(r.commands) > 0 && r.predicate != nil:
		f.Commands = slices.Clone(r.commands)
		f.Predicate = r.predicate
	case len(r.commands) > 0:
		f.Commands = slices.Clone(r.commands)
	case r.predicate != nil:
		f.Predicate = r.predicate
	default:
		f.ContentTypes = slices.Clone(r.contentTypes)
	}

	return f
}

// CallbackRecord хранит регистрацию обработчика callback query
type CallbackRecord struct {
	name      string
	handler   CallbackBotFunc
	withBot   bool
	predicate CallbackPredicate
}

func newCallbackRecord(opts CallbackOptions, handler CallbackBotFunc, withBot bool, fn any) *CallbackRecord {
	return &CallbackRecord{
		name:      handlerName(opts.Name, fn),
		handler:   handler,
		withBot:   withBot,
		predicate: opts.Predicate,
	}
}

// Name возвращает имя обработчика
func (r *CallbackRecord) Name() string { return r.name }

// WithBot сообщает, получает ли обработчик бота
func (r *CallbackRecord) WithBot() bool { return r.withBot }

// handlerName возвращает явное имя или короткое имя функции
func handlerName(explicit string, fn any) string {
	if explicit != "" {
		return explicit
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "unknown"
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}

	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
