/*
Package telegram adapts the Telegram Bot API to the bot.Transport contract.

PURPOSE:
  The one place that knows about Telegram. It converts long-polling updates
  into bot.Event values and renders the controller's logical keyboards as
  Telegram inline/reply markup. Nothing outside this package imports the
  Telegram client.

DISPATCH:
  Run consumes the update channel in a single loop and hands one event at a
  time to the handler, so handlers run to completion before the next event is
  dispatched. The engine and sessions carry their own locks regardless, so
  correctness does not depend on this loop staying single-threaded.

EDIT QUIRK:
  Telegram rejects edits that change nothing ("message is not modified").
  That happens on harmless double-taps, so it is swallowed here.

SEE ALSO:
  - bot/transport.go: The contract this package implements
  - cmd/bot/main.go: Wiring and startup
*/
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/warp/gear-depot/bot"
)

// Bot wraps the Telegram client as a bot.Transport plus an update loop.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New authenticates against the Telegram Bot API with the given token.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api}, nil
}

// Username returns the authenticated bot account name, for startup logging.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run long-polls Telegram and dispatches one event at a time to handle until
// the context is canceled.
func (b *Bot) Run(ctx context.Context, handle func(context.Context, bot.Event)) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if ev, ok := toEvent(update); ok {
				handle(ctx, ev)
			}
		}
	}
}

// toEvent converts a Telegram update into a bot.Event. Updates that are
// neither text messages nor callback taps are dropped.
func toEvent(update tgbotapi.Update) (bot.Event, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		m := update.Message
		return bot.Event{
			Type:     bot.EventText,
			UserID:   m.From.ID,
			Username: m.From.UserName,
			ChatID:   m.Chat.ID,
			Text:     m.Text,
		}, true

	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		cb := update.CallbackQuery
		return bot.Event{
			Type:      bot.EventTap,
			UserID:    cb.From.ID,
			Username:  cb.From.UserName,
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
			Data:      cb.Data,
			TapID:     cb.ID,
		}, true
	}
	return bot.Event{}, false
}

// =============================================================================
// TRANSPORT IMPLEMENTATION
// =============================================================================

// Send posts a new message with an optional inline keyboard.
func (b *Bot) Send(_ context.Context, chatID int64, text string, kb *bot.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = inlineMarkup(*kb)
	}
	_, err := b.api.Send(msg)
	return err
}

// Edit replaces an existing message's text and keyboard.
func (b *Bot) Edit(_ context.Context, chatID int64, messageID int, text string, kb *bot.Keyboard) error {
	var err error
	if kb != nil {
		_, err = b.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineMarkup(*kb)))
	} else {
		_, err = b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	}
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

// SendMenu posts a message with a persistent reply keyboard.
func (b *Bot) SendMenu(_ context.Context, chatID int64, text string, rows [][]string) error {
	var kbRows [][]tgbotapi.KeyboardButton
	for _, row := range rows {
		var r []tgbotapi.KeyboardButton
		for _, label := range row {
			r = append(r, tgbotapi.NewKeyboardButton(label))
		}
		kbRows = append(kbRows, r)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(kbRows...)
	_, err := b.api.Send(msg)
	return err
}

// Alert completes a tap with a visible notification; the current view stays.
func (b *Bot) Alert(_ context.Context, tapID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallbackWithAlert(tapID, text))
	return err
}

// Ack completes a tap silently.
func (b *Bot) Ack(_ context.Context, tapID string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(tapID, ""))
	return err
}

func inlineMarkup(kb bot.Keyboard) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range kb {
		var r []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		rows = append(rows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
