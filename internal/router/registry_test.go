package router

import (
	"context"
	"testing"
	"time"

	"tgrouter/internal/domain/types"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// valueBot не сравним из-за среза и не может быть зарегистрирован
type valueBot struct {
	*mockBot
	tags []string
}

// metaBot сравним по типу, но хранит срез в поле any
type metaBot struct {
	*mockBot
	meta any
}

// statsBot читает статистику реестра во время привязки обработчиков
type statsBot struct {
	*mockBot
	reg   *Registry
	stats []Stats
}

func (b *statsBot) MessageHandler(filter MessageFilter, handler MessageFunc) {
	b.stats = append(b.stats, b.reg.Stats())
	b.mockBot.MessageHandler(filter, handler)
}

func TestRegistry_RegisterBotOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := NewRegistry(zap.New(core))
	reg.Message(MessageOptions{Commands: []string{"start"}}, noopMessage)
	reg.Callback(CallbackOptions{}, noopCallback)

	bot := &mockBot{}
	require.NoError(t, reg.RegisterBot(bot))
	require.NoError(t, reg.RegisterBot(bot))

	assert.Len(t, bot.messages, 1)
	assert.Len(t, bot.callbacks, 1)
	assert.Equal(t, 1, logs.FilterMessage("Bot already registered").Len())
	assert.Equal(t, 1, reg.Stats().TotalBots)
}

func TestRegistry_DistinctBotsByIdentity(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Message(MessageOptions{}, noopMessage)

	first := &mockBot{}
	second := &mockBot{}
	require.NoError(t, reg.RegisterBot(first))
	require.NoError(t, reg.RegisterBot(second))

	assert.Len(t, first.messages, 1)
	assert.Len(t, second.messages, 1)
	assert.Equal(t, 2, reg.Stats().TotalBots)
}

func TestRegistry_RegisterInvalidBot(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	err := reg.RegisterBot(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNilBot)

	err = reg.RegisterBot((*mockBot)(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNilBot)

	err = reg.RegisterBot(valueBot{mockBot: &mockBot{}, tags: []string{"a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBotNotComparable)

	err = reg.RegisterBot(metaBot{mockBot: &mockBot{}, meta: []string{"x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBotNotComparable)

	err = reg.RegisterBot(metaBot{mockBot: &mockBot{}, meta: "comparable value"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBotNotComparable)

	assert.Equal(t, 0, reg.Stats().TotalBots)
}

func TestRegistry_RegisterBotCanReadStats(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Message(MessageOptions{}, noopMessage)

	bot := &statsBot{mockBot: &mockBot{}, reg: reg}
	done := make(chan error, 1)
	go func() { done <- reg.RegisterBot(bot) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RegisterBot blocked while the bot read Stats")
	}

	require.Len(t, bot.stats, 1)
	assert.Equal(t, 1, bot.stats[0].TotalBots)
	assert.Len(t, bot.messages, 1)
}

func TestRegistry_IncludeRouterAndStats(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Message(MessageOptions{}, noopMessage)

	users := New("users", zap.NewNop())
	users.Message(MessageOptions{Commands: []string{"start"}}, noopMessage)
	users.Message(MessageOptions{Commands: []string{"help"}}, noopMessage)
	users.Callback(CallbackOptions{}, noopCallback)

	reg.IncludeRouter(users)
	reg.IncludeRouter(nil)

	stats := reg.Stats()
	assert.Equal(t, Stats{
		TotalBots:     0,
		TotalHandlers: 4,
		Handlers:      HandlerCounts{Message: 3, Callback: 1},
	}, stats)
}

func TestRegistry_WithBotVariants(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	var got []Bot
	reg.MessageWithBot(MessageOptions{}, func(_ context.Context, bot Bot, _ *tgbotapi.Message) error {
		got = append(got, bot)
		return nil
	})
	reg.CallbackWithBot(CallbackOptions{}, func(_ context.Context, bot Bot, _ *tgbotapi.CallbackQuery) error {
		got = append(got, bot)
		return nil
	})

	bot := &mockBot{}
	require.NoError(t, reg.RegisterBot(bot))
	require.NoError(t, bot.messages[0].handler(context.Background(), textMessage("hi")))
	require.NoError(t, bot.callbacks[0].handler(context.Background(), &tgbotapi.CallbackQuery{Data: "x"}))

	require.Len(t, got, 2)
	assert.Same(t, bot, got[0])
	assert.Same(t, bot, got[1])
}

func TestDefault_IsSingleton(t *testing.T) {
	first := Default()
	second := Default()
	assert.Same(t, first, second)
	assert.Equal(t, GlobalRouterName, first.Router().Name())
}

func TestDefault_PassThroughs(t *testing.T) {
	before := GlobalStats()

	HandleMessage(MessageOptions{Commands: []string{"global"}}, noopMessage)
	HandleMessageWithBot(MessageOptions{}, func(context.Context, Bot, *tgbotapi.Message) error { return nil })
	HandleCallback(CallbackOptions{}, noopCallback)
	HandleCallbackWithBot(CallbackOptions{}, func(context.Context, Bot, *tgbotapi.CallbackQuery) error { return nil })

	extra := New("extra", zap.NewNop())
	extra.Message(MessageOptions{}, noopMessage)
	IncludeRouter(extra)

	bot := &mockBot{}
	require.NoError(t, RegisterBot(bot))
	require.NoError(t, RegisterBot(bot))

	after := GlobalStats()
	assert.Equal(t, before.Handlers.Message+3, after.Handlers.Message)
	assert.Equal(t, before.Handlers.Callback+2, after.Handlers.Callback)
	assert.Equal(t, before.TotalBots+1, after.TotalBots)
	assert.Len(t, bot.messages, after.Handlers.Message)
}
