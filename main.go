package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/vocabbot/internal/bot"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/learning"
	"github.com/example/vocabbot/internal/progress"
	"github.com/example/vocabbot/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	store := database.NewLearningStore()
	tracker, err := progress.NewTracker(database.NewProgressRepository(), time.Now())
	if err != nil {
		log.Fatalf("Failed to initialize progress tracker: %v", err)
	}

	engine := learning.NewEngine(store, learning.DefaultConfig())
	session := learning.NewSession(engine, tracker, store, nil)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	b, err := bot.New(token, session)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	sched := scheduler.New(tracker, b)
	sched.Start()
	defer sched.Stop()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
		b.Stop()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped successfully")
}
