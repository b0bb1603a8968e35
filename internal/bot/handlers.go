package bot

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabbot/internal/excel"
	"github.com/example/vocabbot/internal/learning"
	"github.com/example/vocabbot/pkg/models"
)

// handleCommand dispatches a slash command.
func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(message)
	case "help":
		return b.handleHelp(message)
	case "study":
		return b.handleStudy(message)
	case "resume":
		return b.handleResume(message)
	case "next":
		return b.handleNext(message)
	case "skip":
		return b.handleNext(message) // skipping records nothing, just advances
	case "progress":
		return b.handleProgress(message)
	case "categories":
		return b.handleCategories(message)
	case "find":
		return b.handleFind(message)
	case "suggest":
		return b.handleSuggest(message)
	case "import":
		b.reply(message.Chat.ID, "Send me an .xlsx or .csv file with columns: word, category, Vietnamese prompt, sentences (separated by ||), grammar note.")
		return nil
	default:
		b.reply(message.Chat.ID, "Unknown command. Try /help.")
		return nil
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) error {
	text := "Welcome! I help you practice English sentences from Vietnamese prompts.\n\n" +
		"Use /study to begin, then type the English sentence for each prompt I show you.\n" +
		"See /help for all commands."
	b.reply(message.Chat.ID, text)
	return nil
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "Commands:\n" +
		"/study [category] - build a practice queue and show the first prompt\n" +
		"/resume [category] - continue the queue saved from last time\n" +
		"/next - advance to the next item\n" +
		"/skip - skip the current item without recording an attempt\n" +
		"/progress - words learned, goal and debt\n" +
		"/categories - list learning categories\n" +
		"/find <text> - search vocabulary\n" +
		"/suggest <word> - AI example sentences\n" +
		"/import - import vocabulary from a spreadsheet\n\n" +
		"Anything else you type is graded as an answer to the current prompt."
	b.reply(message.Chat.ID, text)
	return nil
}

func (b *Bot) handleStudy(message *tgbotapi.Message) error {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		arg = b.config.DefaultCategory
	}
	category, ok := models.ParseCategory(arg)
	if !ok {
		b.reply(message.Chat.ID, fmt.Sprintf("Unknown category %q. See /categories.", arg))
		return nil
	}

	if err := b.session.BuildQueue(category); err != nil {
		return err
	}
	if b.session.QueueLen() == 0 {
		b.reply(message.Chat.ID, "Nothing to study in this category yet. Add vocabulary with /import first.")
		return nil
	}

	b.session.Advance()
	b.reply(message.Chat.ID, fmt.Sprintf("Queue of %d item(s) ready for %s.", b.session.QueueLen(), category))
	b.showPrompt(message.Chat.ID)
	return nil
}

func (b *Bot) handleResume(message *tgbotapi.Message) error {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		arg = b.config.DefaultCategory
	}
	category, ok := models.ParseCategory(arg)
	if !ok {
		b.reply(message.Chat.ID, fmt.Sprintf("Unknown category %q. See /categories.", arg))
		return nil
	}

	if err := b.session.Resume(category); err != nil {
		return err
	}
	if b.session.QueueLen() == 0 {
		b.reply(message.Chat.ID, "Nothing saved for this category. Use /study to build a queue.")
		return nil
	}

	b.session.Advance()
	b.reply(message.Chat.ID, fmt.Sprintf("Resumed a queue of %d item(s) for %s.", b.session.QueueLen(), category))
	b.showPrompt(message.Chat.ID)
	return nil
}

func (b *Bot) handleNext(message *tgbotapi.Message) error {
	if b.session.Current() == nil {
		b.reply(message.Chat.ID, "No study session yet. Use /study to begin.")
		return nil
	}
	b.session.Advance()
	b.showPrompt(message.Chat.ID)
	return nil
}

func (b *Bot) handleProgress(message *tgbotapi.Message) error {
	s := b.session.ProgressSummary()
	text := fmt.Sprintf(
		"📊 Progress\nWords learned: %d\nGoal: %d\nDebt: %d\nCompletion: %d%%\nLevel: %d",
		s.WordsLearned, s.Goal, s.Debt, s.ProgressPercentage, s.Level,
	)
	b.reply(message.Chat.ID, text)
	return nil
}

func (b *Bot) handleCategories(message *tgbotapi.Message) error {
	var lines []string
	for _, c := range models.Categories() {
		lines = append(lines, "- "+string(c))
	}
	b.reply(message.Chat.ID, "Categories:\n"+strings.Join(lines, "\n"))
	return nil
}

func (b *Bot) handleFind(message *tgbotapi.Message) error {
	pattern := strings.TrimSpace(message.CommandArguments())
	if pattern == "" {
		b.reply(message.Chat.ID, "Usage: /find <text>")
		return nil
	}
	items, err := b.vocabRepo.Search(pattern)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		b.reply(message.Chat.ID, "No matches.")
		return nil
	}
	var lines []string
	for i, item := range items {
		if i == 10 {
			lines = append(lines, fmt.Sprintf("... and %d more", len(items)-10))
			break
		}
		lines = append(lines, fmt.Sprintf("%s (%s, %d examples)", item.Word, item.Category, len(item.UsableExamples())))
	}
	b.reply(message.Chat.ID, strings.Join(lines, "\n"))
	return nil
}

func (b *Bot) handleSuggest(message *tgbotapi.Message) error {
	if !b.openAiEnabled {
		b.reply(message.Chat.ID, "AI suggestions are disabled (no OPENAI_API_KEY).")
		return nil
	}
	word := strings.TrimSpace(message.CommandArguments())
	if word == "" {
		b.reply(message.Chat.ID, "Usage: /suggest <word>")
		return nil
	}
	sentences, err := b.chatGPT.GenerateExampleSentences(&models.Vocabulary{Word: word}, b.config.SuggestionCount)
	if err != nil {
		return err
	}
	b.reply(message.Chat.ID, "Suggested sentences:\n"+strings.Join(sentences, "\n"))
	return nil
}

// handleAnswer grades free text against the current prompt.
func (b *Bot) handleAnswer(message *tgbotapi.Message) error {
	result, err := b.session.SubmitAnswer(message.Text)
	if err == learning.ErrNoActiveItem {
		b.reply(message.Chat.ID, "No study session yet. Use /study to begin.")
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case result.Warning != "":
		b.reply(message.Chat.ID, "⚠️ "+result.Warning)
	case result.Correct:
		b.renderCorrect(message.Chat.ID, result)
	default:
		b.renderIncorrect(message.Chat.ID, result)
	}
	return nil
}

func (b *Bot) renderCorrect(chatID int64, result learning.Result) {
	var sb strings.Builder
	sb.WriteString("✅ Correct!")
	if result.ItemMastered {
		sb.WriteString("\n🎓 You mastered this word.")
		if result.AllCaughtUp {
			sb.WriteString("\n🏁 All items in this category are mastered — nothing left to swap in.")
		} else {
			sb.WriteString(" A new word took its place in the queue.")
		}
	}
	b.reply(chatID, sb.String())
	b.showPrompt(chatID)
}

func (b *Bot) renderIncorrect(chatID int64, result learning.Result) {
	var sb strings.Builder
	sb.WriteString("❌ Not quite")
	if result.Diff != nil {
		sb.WriteString(fmt.Sprintf(" (%d%% similar)", result.Diff.Similarity))
		sb.WriteString(".\n\nYour answer:\n" + result.Diff.HighlightedUserAnswer)
		if result.Diff.ErrorDetails != "" {
			sb.WriteString("\n\n" + result.Diff.ErrorDetails)
		}
		sb.WriteString("\n\nExpected:\n" + result.Diff.CorrectAnswer)
	} else {
		sb.WriteString(".")
	}
	b.replyMarkdown(chatID, sb.String())
}

// showPrompt renders the current prompt: the Vietnamese gloss, plus the
// grammar note when one exists.
func (b *Bot) showPrompt(chatID int64) {
	item := b.session.Current()
	if item == nil {
		b.reply(chatID, "Queue is empty. Use /study to rebuild it.")
		return
	}
	ex := b.session.CurrentExample()
	if ex == nil {
		b.reply(chatID, "All prompts for this word are done — use /next to continue.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 Translate to English (%s):\n%s", item.Word, ex.Vietnamese))
	if ex.Grammar != "" {
		sb.WriteString("\n💡 " + ex.Grammar)
	}
	b.reply(chatID, sb.String())
}

// handleDocument downloads an attached spreadsheet and runs the importer.
func (b *Bot) handleDocument(message *tgbotapi.Message) error {
	name := strings.ToLower(message.Document.FileName)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".csv") {
		b.reply(message.Chat.ID, "Please send an .xlsx or .csv file.")
		return nil
	}

	url, err := b.api.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		return fmt.Errorf("failed to resolve file URL: %v", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %v", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "import-*"+filepath.Ext(name))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save file: %v", err)
	}
	tmp.Close()

	config := excel.DefaultImportConfig()
	config.FilePath = tmp.Name()
	result, err := excel.ImportVocabularies(config)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"Import finished: %d rows, %d created, %d updated, %d skipped.",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped,
	)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d row(s) failed, first error: %s", len(result.Errors), result.Errors[0])
	}
	b.reply(message.Chat.ID, text)
	return nil
}
