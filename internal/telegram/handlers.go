package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-bot/internal/activity"
	"routine-bot/internal/advisor"
	"routine-bot/internal/routines"
	"routine-bot/internal/session"
	"routine-bot/internal/timeslot"
)

const (
	btnRoutines = "📅 Дневные рутины"
	btnAIChat   = "🤖 Чат с ИИ"
	btnActivity = "📊 Моя активность"
	btnAdd      = "➕ Добавить рутину"
	btnBack     = "⬅ Назад"

	callbackAdd          = "add"
	callbackTogglePrefix = "toggle:"

	msgAskName     = "✍️ Введи название рутины:"
	msgAskTime     = "⏰ Введи время\nПример: 17:00-18:00 или 23:00-07:00"
	msgBadFormat   = "❌ Неверный формат времени"
	msgConflict    = "❌ Конфликт по времени"
	msgUnavailable = "⚠️ ИИ временно недоступен.\nПопробуй позже."
	msgStorageFail = "⚠️ Что-то пошло не так. Попробуй ещё раз."
	msgUseMenu     = "Используй меню 👇"
)

func uidOf(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	uid := uidOf(chatID)
	txt := msg.Text

	log.Printf("Incoming message from %d: %q", chatID, txt)

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(chatID, uid)
		return
	}

	// "Back" is accepted from any state and always returns to the menu.
	if txt == btnBack {
		b.sessions.Clear(chatID)
		b.sendMainMenu(chatID)
		return
	}

	switch st := b.sessions.Get(chatID); st.Step {
	case session.StepAwaitingName:
		b.sessions.Set(chatID, session.State{Step: session.StepAwaitingTime, PendingName: txt})
		b.sendMessage(chatID, msgAskTime)
		return
	case session.StepAwaitingTime:
		b.handleTimeInput(chatID, uid, txt, st)
		return
	case session.StepAdvisoryChat:
		b.handleAdvisoryMessage(ctx, chatID, uid, txt)
		return
	}

	switch txt {
	case btnRoutines:
		b.showRoutines(chatID, uid)
	case btnAdd:
		b.sessions.Set(chatID, session.State{Step: session.StepAwaitingName})
		b.sendMessage(chatID, msgAskName)
	case btnAIChat:
		b.sessions.Set(chatID, session.State{Step: session.StepAdvisoryChat})
		b.sendAIIntro(chatID)
	case btnActivity:
		b.showActivity(chatID, uid)
	default:
		b.sendMessage(chatID, msgUseMenu)
	}
}

func (b *Bot) handleStart(chatID int64, uid string) {
	if err := b.store.EnsureUser(uid); err != nil {
		log.Printf("failed to ensure user %s: %v", uid, err)
	}
	b.sessions.Clear(chatID)

	b.sendMessage(chatID,
		"👋 Привет!\n\n"+
			"Я — умный ассистент для дневных рутин 🤖\n\n"+
			"Я помогу тебе:\n"+
			"• планировать день 📅\n"+
			"• отмечать выполнение ☑\n"+
			"• анализировать прогресс 📊\n"+
			"• получать умные советы 🧠\n\n"+
			"С чего начнём?")
	b.sendMainMenu(chatID)
}

// handleTimeInput finishes the manual add flow. On a format or conflict
// failure the state is left untouched so the user can try again.
func (b *Bot) handleTimeInput(chatID int64, uid, txt string, st session.State) {
	start, end, err := timeslot.ParseRange(txt)
	if err != nil {
		b.sendMessage(chatID, msgBadFormat)
		return
	}
	if _, err := b.store.Add(uid, st.PendingName, start, end); err != nil {
		if errors.Is(err, routines.ErrConflict) {
			b.sendMessage(chatID, msgConflict)
			return
		}
		log.Printf("failed to add routine for %s: %v", uid, err)
		b.sendMessage(chatID, msgStorageFail)
		return
	}
	b.sessions.Clear(chatID)
	b.showRoutines(chatID, uid)
}

func (b *Bot) handleAdvisoryMessage(ctx context.Context, chatID int64, uid, txt string) {
	rec, err := b.store.Snapshot(uid)
	if err != nil {
		log.Printf("failed to load user %s: %v", uid, err)
		b.sendMessage(chatID, msgStorageFail)
		return
	}

	answer, err := b.advisor.Ask(ctx, rec.Routines, txt)
	if err != nil {
		log.Printf("advisor call failed for %s: %v", uid, err)
		b.sendMessage(chatID, msgUnavailable)
		return
	}

	reply, err := advisor.ParseReply(answer)
	if err != nil {
		// A broken directive is indistinguishable from a broken service.
		log.Printf("advisor returned bad directive for %s: %v", uid, err)
		b.sendMessage(chatID, msgUnavailable)
		return
	}
	if reply.Kind == advisor.ReplyText {
		b.sendMessage(chatID, reply.Text)
		return
	}

	d := reply.Directive
	start, end, err := timeslot.ParseRange(d.RangeText())
	if err != nil {
		log.Printf("advisor range failed to parse for %s: %v", uid, err)
		b.sendMessage(chatID, msgUnavailable)
		return
	}
	if _, err := b.store.Add(uid, d.Name, start, end); err != nil {
		// Advisory output is best effort: a conflicting directive is
		// dropped and the raw text shown instead.
		log.Printf("advisor directive rejected for %s: %v", uid, err)
		b.sendMessage(chatID, answer)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✅ Я добавил рутину:\n%s (%s)", d.Name, d.RangeText()))
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	uid := uidOf(chatID)

	if cb.Data == callbackAdd {
		b.sessions.Set(chatID, session.State{Step: session.StepAwaitingName})
		b.answerCallback(cb.ID, "")
		b.sendMessage(chatID, msgAskName)
		return
	}

	if strings.HasPrefix(cb.Data, callbackTogglePrefix) {
		rid := strings.TrimPrefix(cb.Data, callbackTogglePrefix)
		if err := b.store.Toggle(uid, b.store.Today(), rid); err != nil {
			log.Printf("failed to toggle %s for %s: %v", rid, uid, err)
			b.answerCallback(cb.ID, "")
			return
		}
		b.answerCallback(cb.ID, "Готово ✅")
		b.deleteMessage(chatID, cb.Message.MessageID)
		b.showRoutines(chatID, uid)
	}
}

func (b *Bot) sendMainMenu(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnRoutines)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAIChat)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnActivity)),
	)

	msg := tgbotapi.NewMessage(chatID, "🏠 Главное меню\nВыбери действие 👇")
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send main menu: %v", err)
	}
}

func (b *Bot) sendAIIntro(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)

	msg := tgbotapi.NewMessage(chatID,
		"🤖 Режим ИИ включён.\n\n"+
			"Напиши вопрос или просьбу.\n"+
			"Пример:\n"+
			"• Как лучше планировать день?\n"+
			"• Добавь рутину сон 23:00-07:00")
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send ai intro: %v", err)
	}
}

func (b *Bot) showRoutines(chatID int64, uid string) {
	if err := b.store.SeedToday(uid); err != nil {
		log.Printf("failed to seed today for %s: %v", uid, err)
	}
	rec, err := b.store.Snapshot(uid)
	if err != nil {
		log.Printf("failed to load user %s: %v", uid, err)
		b.sendMessage(chatID, msgStorageFail)
		return
	}

	if len(rec.Routines) == 0 {
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnAdd),
				tgbotapi.NewKeyboardButton(btnBack),
			),
		)
		msg := tgbotapi.NewMessage(chatID, "📭 Рутин пока нет.\nДобавь первую 👇")
		msg.ReplyMarkup = kb
		if _, err := b.s.Send(msg); err != nil {
			log.Printf("failed to send empty list: %v", err)
		}
		return
	}

	today := b.store.Today()
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range rec.Routines {
		mark := "☐"
		if rec.History[today][r.ID] {
			mark = "☑"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", mark, r.Name),
				callbackTogglePrefix+r.ID,
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnAdd, callbackAdd),
	))

	msg := tgbotapi.NewMessage(chatID, b.routinesText(rec))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send routines: %v", err)
	}
}

func (b *Bot) showActivity(chatID int64, uid string) {
	rec, err := b.store.Snapshot(uid)
	if err != nil {
		log.Printf("failed to load user %s: %v", uid, err)
		b.sendMessage(chatID, msgStorageFail)
		return
	}
	days := activity.FullyCompletedDays(rec.History)
	b.sendMessage(chatID, fmt.Sprintf("📊 Твоя активность\n\n🔥 Полностью выполненных дней: %d", days))
}
