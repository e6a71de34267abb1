package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"routine-bot/internal/llm"
	"routine-bot/internal/routines"
	"routine-bot/internal/timeslot"
)

// Service talks to the advisory LLM. Every call carries the user's current
// routine list in the system prompt and is bounded by a single timeout; there
// are no retries.
type Service struct {
	client  llm.Client
	timeout time.Duration
}

func New(client llm.Client, timeout time.Duration) *Service {
	return &Service{client: client, timeout: timeout}
}

func buildSystemPrompt(current []routines.Routine) string {
	var ctx strings.Builder
	for _, r := range current {
		ctx.WriteString(fmt.Sprintf("- %s (%s-%s)\n", r.Name, timeslot.ToText(r.Start), timeslot.ToText(r.End)))
	}
	routinesContext := ctx.String()
	if routinesContext == "" {
		routinesContext = "Рутин пока нет."
	}
	return "Ты — умный ассистент по дневным рутинам.\n" +
		"Отвечай кратко и по делу.\n\n" +
		"Если пользователь просит добавить рутину, " +
		"ответь строго в формате:\n" +
		"ADD: название | HH:MM-HH:MM\n\n" +
		"Текущие рутины:\n" + routinesContext
}

// Ask sends the user's message to the advisory service and returns the raw
// trimmed reply.
func (s *Service) Ask(ctx context.Context, current []routines.Routine, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msgs := []llm.Message{
		{Role: "system", Content: buildSystemPrompt(current)},
		{Role: "user", Content: text},
	}
	resp, err := s.client.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("advisor generate: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}
