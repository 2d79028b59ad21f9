package handlers

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const menuPrefix = "menu:"

// menuKeyboard возвращает inline-клавиатуру главного меню
func menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Help", menuPrefix+"help"),
			tgbotapi.NewInlineKeyboardButtonData("About", menuPrefix+"about"),
		),
	)
}

func isMenuCallback(q *tgbotapi.CallbackQuery) bool {
	return strings.HasPrefix(q.Data, menuPrefix)
}
