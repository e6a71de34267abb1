package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"routine-bot/internal/llm"
	"routine-bot/internal/routines"
)

type fakeLLM struct {
	resp    llm.Response
	err     error
	gotMsgs []llm.Message
}

func (f *fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	f.gotMsgs = msgs
	return f.resp, f.err
}

func TestAskCarriesRoutineContext(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "  ок  "}}
	svc := New(fl, time.Second)

	current := []routines.Routine{
		{ID: "0", Name: "Сон", Start: 1380, End: 1860},
		{ID: "1", Name: "Зарядка", Start: 420, End: 450},
	}
	answer, err := svc.Ask(context.Background(), current, "что дальше?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "ок" {
		t.Fatalf("answer not trimmed: %q", answer)
	}
	if len(fl.gotMsgs) != 2 || fl.gotMsgs[0].Role != "system" || fl.gotMsgs[1].Content != "что дальше?" {
		t.Fatalf("unexpected messages: %+v", fl.gotMsgs)
	}
	sys := fl.gotMsgs[0].Content
	if !strings.Contains(sys, "Сон (23:00-07:00)") || !strings.Contains(sys, "Зарядка (07:00-07:30)") {
		t.Fatalf("routine context missing from system prompt: %q", sys)
	}
	if !strings.Contains(sys, "ADD: название | HH:MM-HH:MM") {
		t.Fatalf("directive grammar missing from system prompt: %q", sys)
	}
}

func TestAskEmptyRoutineList(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "привет"}}
	svc := New(fl, time.Second)
	if _, err := svc.Ask(context.Background(), nil, "hi"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(fl.gotMsgs[0].Content, "Рутин пока нет.") {
		t.Fatalf("empty list placeholder missing: %q", fl.gotMsgs[0].Content)
	}
}

func TestAskWrapsClientError(t *testing.T) {
	wantErr := errors.New("boom")
	svc := New(&fakeLLM{err: wantErr}, time.Second)
	if _, err := svc.Ask(context.Background(), nil, "hi"); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}
