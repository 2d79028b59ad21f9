package router

import (
	"context"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type messageRoute struct {
	filter  MessageFilter
	handler MessageFunc
}

type callbackRoute struct {
	predicate CallbackPredicate
	handler   CallbackFunc
}

// mockBot повторяет поведение клиента бота: хранит регистрации и
// сопоставляет команды сам
type mockBot struct {
	messages  []messageRoute
	callbacks []callbackRoute
	sent      []tgbotapi.Chattable
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, nil
}

func (m *mockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.sent = append(m.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockBot) MessageHandler(filter MessageFilter, handler MessageFunc) {
	m.messages = append(m.messages, messageRoute{filter: filter, handler: handler})
}

func (m *mockBot) CallbackQueryHandler(predicate CallbackPredicate, handler CallbackFunc) {
	m.callbacks = append(m.callbacks, callbackRoute{predicate: predicate, handler: handler})
}

// dispatch вызывает первый подходящий обработчик
func (m *mockBot) dispatch(ctx context.Context, msg *tgbotapi.Message) error {
	for _, route := range m.messages {
		if len(route.filter.Commands) > 0 && !slices.Contains(route.filter.Commands, msg.Command()) {
			continue
		}
		if route.filter.Predicate != nil && !route.filter.Predicate(msg) {
			continue
		}
		return route.handler(ctx, msg)
	}
	return nil
}

func commandMessage(cmd string) *tgbotapi.Message {
	text := "/" + cmd
	return &tgbotapi.Message{
		MessageID: 1,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 42, Type: "private"},
		From:      &tgbotapi.User{ID: 7, UserName: "tester"},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(text)},
		},
	}
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 2,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 42, Type: "private"},
		From:      &tgbotapi.User{ID: 7, UserName: "tester"},
	}
}
