package bot

import (
	"fmt"
	"strconv"
	"strings"

	"chipjack/internal/game"
	"chipjack/internal/player"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackChipPrefix = "chip:"
	CallbackUndo       = "undo"
	CallbackClear      = "clear"
	CallbackAllIn      = "all_in"
	CallbackDeal       = "deal"
	CallbackHit        = "hit"
	CallbackStand      = "stand"
	CallbackNewRound   = "new_round"
	CallbackBalance    = "balance"
)

// chipValue parses a chip callback such as "chip:25".
func chipValue(data string) (int, bool) {
	raw, ok := strings.CutPrefix(data, CallbackChipPrefix)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func BetKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, chip := range player.Chips {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("🪙 %d", chip),
			fmt.Sprintf("%s%d", CallbackChipPrefix, chip),
		))
		if (i+1)%3 == 0 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo", CallbackUndo),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear", CallbackClear),
			tgbotapi.NewInlineKeyboardButtonData("💰 All in", CallbackAllIn),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🃏 Deal", CallbackDeal),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func GameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
			tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
		),
	)
}

func EndGameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New round", CallbackNewRound),
			tgbotapi.NewInlineKeyboardButtonData("💵 Balance", CallbackBalance),
		),
	)
}

// keyboardFor picks the buttons that are legal in the snapshot's state.
func keyboardFor(snap game.RoundSnapshot) (tgbotapi.InlineKeyboardMarkup, bool) {
	switch snap.State {
	case game.StateIdle:
		if snap.GameOver {
			return tgbotapi.InlineKeyboardMarkup{}, false
		}
		return BetKeyboard(), true
	case game.StateActive:
		return GameKeyboard(), true
	case game.StateSettled:
		return EndGameKeyboard(), true
	}
	return tgbotapi.InlineKeyboardMarkup{}, false
}
