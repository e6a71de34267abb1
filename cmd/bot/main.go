package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"routine-bot/internal/advisor"
	"routine-bot/internal/config"
	"routine-bot/internal/llm"
	"routine-bot/internal/routines"
	"routine-bot/internal/scheduler"
	"routine-bot/internal/session"
	"routine-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	repo, err := routines.NewFileRepository(cfg.DataFilePath)
	if err != nil {
		log.Fatalf("failed to init routines repo: %v", err)
	}
	store := routines.NewService(repo)

	factory := llm.NewFactory(cfg)
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}
	adv := advisor.New(llmClient, cfg.AdvisorTimeout)

	bot, err := telegram.New(cfg.TelegramBotToken, store, session.NewMemoryStore(), adv)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New(cfg.AgendaCronSpec)
	sched.SetAgendaFunction(bot.SendDailyAgenda)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(context.Background())
}
