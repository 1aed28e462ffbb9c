package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot feeds Telegram updates into the dialog state machine.
type Bot struct {
	api    *tgbotapi.BotAPI
	dialog *Dialog
}

func New(token string, dialog *Dialog) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{api: api, dialog: dialog}, nil
}

// Start begins polling updates until ctx is cancelled. Messages are
// handled one at a time, so a conversation never sees interleaved
// transitions.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	key := SessionKey{ChatID: msg.Chat.ID, UserID: msg.From.ID}

	var reply string
	var err error
	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s", msg.From.ID, msg.Command())
		reply, err = b.dialog.HandleCommand(ctx, key, msg.Command(), msg.From.FirstName, msg.From.UserName)
	} else {
		reply, err = b.dialog.HandleText(ctx, key, msg.From.UserName, msg.Text)
	}
	if err != nil {
		return err
	}
	if reply == "" {
		return nil
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	if b.dialog.states.Get(key).State == StateNone {
		out.ReplyMarkup = menuKeyboard()
	} else {
		out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
	_, err = b.api.Send(out)
	return err
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/reset"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/connect"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
