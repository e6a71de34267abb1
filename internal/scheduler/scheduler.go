package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler управляет запланированными задачами
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	spec       string
	agendaFunc func(ctx context.Context) error
}

// New создает новый планировщик; пустой spec отключает рассылку
func New(spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		spec:   spec,
	}
}

// SetAgendaFunction устанавливает функцию рассылки дневного списка рутин
func (s *Scheduler) SetAgendaFunction(f func(ctx context.Context) error) {
	s.agendaFunc = f
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	if s.spec == "" || s.agendaFunc == nil {
		log.Println("📅 Daily agenda disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("🕘 Triggered daily agenda (%s)", s.spec)
		if err := s.agendaFunc(s.ctx); err != nil {
			log.Printf("❌ Daily agenda failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - daily agenda at %q UTC", s.spec)
	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}
