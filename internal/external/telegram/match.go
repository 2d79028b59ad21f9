package telegram

import (
	"regexp"
	"slices"
	"strings"

	"tgrouter/internal/router"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
)

type messageRoute struct {
	key          string
	commands     []string
	predicate    router.MessagePredicate
	contentTypes []string
	pattern      *regexp.Regexp
	chatTypes    []string
	invalid      bool
	handler      router.MessageFunc
}

type callbackRoute struct {
	key       string
	predicate router.CallbackPredicate
	handler   router.CallbackFunc
}

// foldCommand приводит команду к виду для сравнения без учета регистра
func foldCommand(cmd string) string {
	return cases.Fold().String(strings.TrimPrefix(cmd, "/"))
}

// routeKey возвращает ключ маршрута для метрик
func routeKey(f router.MessageFilter) string {
	switch {
	case len(f.Commands) > 0:
		return "command:" + strings.Join(f.Commands, ",")
	case f.Predicate != nil:
		return "predicate"
	case len(f.ContentTypes) > 0:
		return "content:" + strings.Join(f.ContentTypes, ",")
	default:
		return "any"
	}
}

// matches проверяет все заданные условия фильтра
func (r *messageRoute) matches(msg *tgbotapi.Message, username string) bool {
	if r.invalid {
		return false
	}

	if len(r.commands) > 0 && !commandMatches(msg, r.commands, username) {
		return false
	}

	if len(r.contentTypes) > 0 && !slices.Contains(r.contentTypes, ContentType(msg)) {
		return false
	}

	if len(r.chatTypes) > 0 && (msg.Chat == nil || !slices.Contains(r.chatTypes, msg.Chat.Type)) {
		return false
	}

	if r.pattern != nil {
		text := msg.Text
		if text == "" {
			text = msg.Caption
		}
		if !r.pattern.MatchString(text) {
			return false
		}
	}

	if r.predicate != nil && !r.predicate(msg) {
		return false
	}

	return true
}

// commandMatches сравнивает команду сообщения со списком.
// Команда с упоминанием другого бота (/start@other_bot) не подходит.
func commandMatches(msg *tgbotapi.Message, commands []string, username string) bool {
	if !msg.IsCommand() {
		return false
	}

	withAt := msg.CommandWithAt()
	if i := strings.Index(withAt, "@"); i >= 0 && username != "" {
		if !strings.EqualFold(withAt[i+1:], username) {
			return false
		}
	}

	cmd := foldCommand(msg.Command())
	for _, c := range commands {
		if foldCommand(c) == cmd {
			return true
		}
	}
	return false
}

// ContentType определяет тип содержимого сообщения
func ContentType(msg *tgbotapi.Message) string {
	switch {
	case msg == nil:
		return ""
	case msg.Text != "":
		return "text"
	case msg.Animation != nil:
		return "animation"
	case msg.Audio != nil:
		return "audio"
	case msg.Document != nil:
		return "document"
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Sticker != nil:
		return "sticker"
	case msg.Video != nil:
		return "video"
	case msg.VideoNote != nil:
		return "video_note"
	case msg.Voice != nil:
		return "voice"
	case msg.Contact != nil:
		return "contact"
	case msg.Venue != nil:
		return "venue"
	case msg.Location != nil:
		return "location"
	case msg.Dice != nil:
		return "dice"
	case msg.Poll != nil:
		return "poll"
	case len(msg.NewChatMembers) > 0:
		return "new_chat_members"
	case msg.LeftChatMember != nil:
		return "left_chat_member"
	case msg.PinnedMessage != nil:
		return "pinned_message"
	default:
		return "unknown"
	}
}
