// Package telegram posts lesson digests to a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/aihub/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends digests to one chat, either a numeric chat ID or a
// public @channel username.
type Notifier struct {
	api    sender
	chatID string
}

// NewNotifier authenticates with the bot token and targets chatID.
func NewNotifier(token, chatID string) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// SendDigest posts the lesson items of date.
func (n *Notifier) SendDigest(_ context.Context, date string, items []models.AIInfo) error {
	msg := n.message(FormatDigest(date, items))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest for %s: %w", date, err)
	}
	return nil
}

func (n *Notifier) message(text string) tgbotapi.MessageConfig {
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(n.chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(n.chatID, text)
	}
	msg.DisableWebPagePreview = true
	return msg
}

// FormatDigest renders the lesson items of date as a plain text message.
func FormatDigest(date string, items []models.AIInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s 오늘의 AI 정보\n", date)
	for _, item := range items {
		fmt.Fprintf(&b, "\n%d. %s\n%s\n", item.ItemIndex+1, item.Title, item.Content)
		if len(item.Terms) == 0 {
			continue
		}
		b.WriteString("\n용어:\n")
		for _, t := range item.Terms {
			fmt.Fprintf(&b, "• %s: %s\n", t.Term, t.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
