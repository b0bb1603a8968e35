package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabbot/internal/progress"
)

// Default window during which reminders may be sent.
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// ProgressSource reports the learner's standing against the time goal.
type ProgressSource interface {
	Summary(now time.Time) progress.Summary
}

// Notifier delivers reminders to the learner.
type Notifier interface {
	SendDebtReminder(debt int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    ProgressSource
	notifier  Notifier
}

// New creates a new scheduler instance
func New(source ProgressSource, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check whether the learner has fallen behind the goal
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder pings the learner when they are behind the goal and
// the current hour is inside the reminder window.
func (s *Scheduler) checkAndSendReminder() {
	now := time.Now()
	currentHour := now.Hour()

	startHour := hourFromEnv("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := hourFromEnv("REMINDER_END_HOUR", DefaultReminderEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	summary := s.source.Summary(now)
	if summary.Debt == 0 {
		return
	}
	if err := s.notifier.SendDebtReminder(summary.Debt); err != nil {
		log.Printf("Error sending debt reminder: %v", err)
	}
}

// RunManualCheck forces a reminder check right away.
func (s *Scheduler) RunManualCheck() error {
	summary := s.source.Summary(time.Now())
	if summary.Debt == 0 {
		return nil
	}
	return s.notifier.SendDebtReminder(summary.Debt)
}

// hourFromEnv reads an hour (0-23) from the environment, falling back to a
// default on missing or invalid values.
func hourFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h > 23 {
		return fallback
	}
	return h
}
