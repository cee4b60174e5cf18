package telegram

import (
	"fmt"
	"strings"

	"go-recruiter-automation/internal/scrape"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// RunSummary is the end-of-run report pushed to the sourcing channel.
type RunSummary struct {
	Extracted  int
	Kept       int
	Flagged    int
	LastPage   int
	CSVPath    string
	Resume     *scrape.ResumePoint
	RunMinutes float64
}

func (b *Bot) SendSummary(s RunSummary) error {
	msgText := "*Recruiter scrape finished*\n"
	msgText += fmt.Sprintf("👥 Extracted: %d\n", s.Extracted)
	msgText += fmt.Sprintf("✅ Kept after filters: %d\n", s.Kept)
	if s.Flagged > 0 {
		msgText += fmt.Sprintf("🔍 Flagged for review: %d\n", s.Flagged)
	}
	msgText += fmt.Sprintf("📄 Last page: %d\n", s.LastPage)
	if s.CSVPath != "" {
		msgText += fmt.Sprintf("💾 CSV: %s\n", b.escapeMarkdown(s.CSVPath))
	}
	if s.Resume != nil {
		msgText += fmt.Sprintf("⚠️ Crashed, resume from page %d candidate %d\n", s.Resume.Page, s.Resume.Candidate)
	}
	msgText += fmt.Sprintf("⏱️ Took %s\n", b.escapeMarkdown(fmt.Sprintf("%.1f min", s.RunMinutes)))

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
