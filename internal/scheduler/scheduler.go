package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/aihub/pkg/models"
	"github.com/go-co-op/gocron"
)

// DefaultDigestHour is the hour the digest is sent when none is configured.
const DefaultDigestHour = 8

// Notifier delivers the lesson digest of a date.
type Notifier interface {
	SendDigest(ctx context.Context, date string, items []models.AIInfo) error
}

// Lessons supplies the lesson items of a date.
type Lessons interface {
	ItemsByDate(ctx context.Context, date string) ([]models.AIInfo, error)
}

// Recorder counts digest runs by result.
type Recorder interface {
	DigestRun(result string)
}

// Options configure a Scheduler.
type Options struct {
	Hour     int
	Location *time.Location
	Logger   *slog.Logger
	Recorder Recorder
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	lessons   Lessons
	notifier  Notifier
	hour      int
	loc       *time.Location
	log       *slog.Logger
	rec       Recorder
	now       func() time.Time
}

// New creates a new scheduler instance
func New(lessons Lessons, notifier Notifier, opts Options) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		lessons:   lessons,
		notifier:  notifier,
		hour:      opts.Hour,
		loc:       loc,
		log:       logger,
		rec:       opts.Recorder,
		now:       now,
	}
}

// Start schedules the daily digest and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if s.hour < 0 || s.hour > 23 {
		return fmt.Errorf("invalid digest hour %d", s.hour)
	}
	_, err := s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.hour)).Do(s.runDigest)
	if err != nil {
		return fmt.Errorf("failed to schedule digest: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("digest scheduled", "hour", s.hour, "location", s.loc.String())
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.SendDigest(ctx); err != nil {
		s.log.Error("digest failed", "error", err)
	}
}

// SendDigest sends today's lesson items. Days without content are skipped.
func (s *Scheduler) SendDigest(ctx context.Context) error {
	date := s.now().In(s.loc).Format("2006-01-02")
	items, err := s.lessons.ItemsByDate(ctx, date)
	if err != nil {
		s.record("error")
		return fmt.Errorf("failed to load lessons for %s: %w", date, err)
	}
	if len(items) == 0 {
		s.record("empty")
		s.log.Info("no lessons to send", "date", date)
		return nil
	}
	if err := s.notifier.SendDigest(ctx, date, items); err != nil {
		s.record("error")
		return err
	}
	s.record("sent")
	s.log.Info("digest sent", "date", date, "items", len(items))
	return nil
}

func (s *Scheduler) record(result string) {
	if s.rec != nil {
		s.rec.DigestRun(result)
	}
}
