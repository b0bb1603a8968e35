package bot

import (
	"context"
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabbot/internal/ai"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/learning"
)

// Bot represents the Telegram front end. It only renders session results;
// all learning logic lives behind the session's command surface.
type Bot struct {
	api           *tgbotapi.BotAPI
	session       *learning.Session
	vocabRepo     *database.VocabularyRepository
	chatGPT       *ai.ChatGPT
	openAiEnabled bool
	config        *Config

	// chatID of the most recent conversation, used for reminders. The app
	// serves a single learner.
	chatID int64
}

// New creates a new bot instance
func New(token string, session *learning.Session) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	openAiEnabled := os.Getenv("OPENAI_API_KEY") != ""
	var chatGPT *ai.ChatGPT
	if openAiEnabled {
		chatGPT, err = ai.New()
		if err != nil {
			log.Printf("Warning: unable to initialize OpenAI client: %v", err)
			openAiEnabled = false
		}
	}

	return &Bot{
		api:           api,
		session:       session,
		vocabRepo:     database.NewVocabularyRepository(),
		chatGPT:       chatGPT,
		openAiEnabled: openAiEnabled,
		config:        DefaultConfig(),
	}, nil
}

// Start begins polling for updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

// Stop halts update polling.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendDebtReminder notifies the learner that they are behind the goal.
func (b *Bot) SendDebtReminder(debt int) error {
	if b.chatID == 0 {
		return nil // nobody has talked to the bot yet
	}
	text := fmt.Sprintf("⏰ You are %d word(s) behind your learning goal. Time to study!", debt)
	_, err := b.api.Send(tgbotapi.NewMessage(b.chatID, text))
	if err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// handleUpdate dispatches one incoming update.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message
	b.chatID = message.Chat.ID

	switch {
	case message.IsCommand():
		if err := b.handleCommand(message); err != nil {
			log.Printf("Error handling command /%s: %v", message.Command(), err)
			b.reply(message.Chat.ID, "Something went wrong, please try again.")
		}
	case message.Document != nil:
		if err := b.handleDocument(message); err != nil {
			log.Printf("Error handling document: %v", err)
			b.reply(message.Chat.ID, "Import failed: "+err.Error())
		}
	case message.Text != "":
		if err := b.handleAnswer(message); err != nil {
			log.Printf("Error handling answer: %v", err)
			b.reply(message.Chat.ID, "Something went wrong, please try again.")
		}
	}
}

// reply sends plain text to a chat, logging failures.
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// replyMarkdown sends Markdown-formatted text to a chat.
func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
