package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"travel-diary/internal/service"
)

// Dialog drives the password-reset and account-linking conversations.
// Every inbound message produces one transition and one reply; any
// soft failure resets the conversation to StateNone.
type Dialog struct {
	accounts *service.AccountService
	states   StateStore
}

func NewDialog(accounts *service.AccountService, states StateStore) *Dialog {
	return &Dialog{accounts: accounts, states: states}
}

// HandleCommand processes /start, /help, /reset and /connect. The
// handle is the sender's telegram username.
func (d *Dialog) HandleCommand(ctx context.Context, key SessionKey, command, firstName, handle string) (string, error) {
	switch command {
	case "start":
		name := strings.TrimSpace(firstName)
		if name == "" {
			name = "путешественник"
		}
		return fmt.Sprintf(
			"Приветствую, %s!\n\n"+
				"Для подключения телеграма к аккаунту выберите команду /connect.\n"+
				"Для сброса и изменения пароля выберите команду /reset.", name), nil
	case "help":
		return "/start - запустить бота\n" +
			"/help - вывести список команд\n" +
			"/reset - сбросить пароль аккаунта\n" +
			"/connect - подключить телеграм к аккаунту", nil
	case "reset":
		return d.startReset(ctx, key, firstName, handle)
	case "connect":
		d.states.Set(key, Session{State: StateAwaitUsername})
		log.Printf("[info] state -> await_username chat=%d", key.ChatID)
		return "Введите ваш логин:", nil
	default:
		return "Команда не поддерживается. Загляните в /help.", nil
	}
}

// HandleText advances the conversation according to the current state.
func (d *Dialog) HandleText(ctx context.Context, key SessionKey, handle, text string) (string, error) {
	session := d.states.Get(key)

	switch session.State {
	case StateAwaitPassword:
		return d.acceptPassword(key, text)
	case StateAwaitPasswordConfirm:
		return d.confirmPassword(ctx, key, session, handle, text)
	case StateAwaitUsername:
		return d.acceptUsername(ctx, key, text)
	case StateAwaitPasswordForLink:
		return d.linkAccount(ctx, key, session, handle, text)
	default:
		return "Я не понял сообщение. Используйте /reset или /connect, подробности в /help.", nil
	}
}

func (d *Dialog) startReset(ctx context.Context, key SessionKey, firstName, handle string) (string, error) {
	if _, err := d.accounts.FindByTelegram(ctx, handle); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return fmt.Sprintf("%s, вы не подключили телеграм в личном кабинете и не указали его при регистрации.", firstName), nil
		}
		return "", err
	}

	d.states.Set(key, Session{State: StateAwaitPassword})
	log.Printf("[info] state -> await_password chat=%d", key.ChatID)
	return "Введите ваш новый пароль:", nil
}

func (d *Dialog) acceptPassword(key SessionKey, text string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		d.states.Clear(key)
		return "", fmt.Errorf("hash pending password: %w", err)
	}

	d.states.Set(key, Session{State: StateAwaitPasswordConfirm, PendingHash: string(hash)})
	log.Printf("[info] state -> await_password_confirm chat=%d", key.ChatID)
	return "Повторите пароль:", nil
}

func (d *Dialog) confirmPassword(ctx context.Context, key SessionKey, session Session, handle, text string) (string, error) {
	d.states.Clear(key)

	if bcrypt.CompareHashAndPassword([]byte(session.PendingHash), []byte(text)) != nil {
		return "Пароли не совпадают. Начните заново командой /reset.", nil
	}

	user, err := d.accounts.FindByTelegram(ctx, handle)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return "Аккаунт не найден. Начните заново командой /reset.", nil
		}
		return "", err
	}

	if err := d.accounts.ResetPassword(ctx, user, text); err != nil {
		return "", err
	}
	log.Printf("[info] password reset for user=%d", user.ID)
	return "Ваш пароль изменен.\n\nВыполните вход используя новый пароль.", nil
}

func (d *Dialog) acceptUsername(ctx context.Context, key SessionKey, text string) (string, error) {
	username := strings.TrimSpace(text)
	if _, err := d.accounts.FindByUsername(ctx, username); err != nil {
		d.states.Clear(key)
		if errors.Is(err, service.ErrNotFound) {
			return "Пользователь не найден.\n\nДля повтора используйте команду /connect.", nil
		}
		return "", err
	}

	d.states.Set(key, Session{State: StateAwaitPasswordForLink, PendingUser: username})
	log.Printf("[info] state -> await_password_for_link chat=%d", key.ChatID)
	return "Введите ваш пароль:", nil
}

func (d *Dialog) linkAccount(ctx context.Context, key SessionKey, session Session, handle, text string) (string, error) {
	d.states.Clear(key)

	user, err := d.accounts.VerifyCredentials(ctx, session.PendingUser, text)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNotFound) {
			return "Неверный пароль. Попробуйте еще раз командой /connect.", nil
		}
		return "", err
	}

	switch err := d.accounts.LinkTelegram(ctx, user, handle); {
	case err == nil:
		log.Printf("[info] telegram linked user=%d", user.ID)
		return "Вы подключены.\n\nВ профиль добавлена ссылка на этот аккаунт.", nil
	case errors.Is(err, service.ErrAlreadyLinked):
		return "Вы уже подключены.", nil
	case errors.Is(err, service.ErrHandleTaken):
		return "Ваш телеграм подключен к другому аккаунту.", nil
	default:
		return "", err
	}
}
