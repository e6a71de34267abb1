package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-bot/internal/advisor"
	"routine-bot/internal/routines"
	"routine-bot/internal/session"
	"routine-bot/internal/timeslot"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	s        sender
	store    *routines.Service
	sessions session.Store
	advisor  *advisor.Service
}

func New(botToken string, store *routines.Service, sessions session.Store, adv *advisor.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:      api,
		s:        botAPISender{api: api},
		store:    store,
		sessions: sessions,
		advisor:  adv,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	// Each update gets its own goroutine so one user's advisory call
	// cannot stall another user's message.
	for update := range updates {
		update := update
		go b.handleUpdate(ctx, update)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleIncomingMessage(ctx, update.Message)
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
}

// SendDailyAgenda pushes today's checklist to every known user. Wired into
// the cron scheduler from main.
func (b *Bot) SendDailyAgenda(ctx context.Context) error {
	uids, err := b.store.AllUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, uid := range uids {
		chatID, err := strconv.ParseInt(uid, 10, 64)
		if err != nil {
			log.Printf("skip agenda for non-numeric uid %q: %v", uid, err)
			continue
		}
		rec, err := b.store.Snapshot(uid)
		if err != nil {
			log.Printf("failed to load user %s for agenda: %v", uid, err)
			continue
		}
		if len(rec.Routines) == 0 {
			continue
		}
		if err := b.store.SeedToday(uid); err != nil {
			log.Printf("failed to seed today for %s: %v", uid, err)
		}
		b.sendMessage(chatID, b.routinesText(rec))
	}
	return nil
}

func (b *Bot) routinesText(rec routines.UserRecord) string {
	today := b.store.Today()
	text := "📅 Твои рутины сегодня:\n\n"
	for _, r := range rec.Routines {
		mark := "☐"
		if rec.History[today][r.ID] {
			mark = "☑"
		}
		text += fmt.Sprintf("%s %s (%s-%s)\n", mark, r.Name, timeslot.ToText(r.Start), timeslot.ToText(r.End))
	}
	return text
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("failed to delete message: %v", err)
	}
}
