package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/example/aihub/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestFormatDigest(t *testing.T) {
	text := FormatDigest("2024-01-01", []models.AIInfo{
		{ItemIndex: 0, Title: "LLM", Content: "Large language models",
			Terms: []models.TermItem{{Term: "token", Description: "unit of text"}}},
		{ItemIndex: 2, Title: "RAG", Content: "Retrieval"},
	})
	assert.Equal(t, "📚 2024-01-01 오늘의 AI 정보\n"+
		"\n1. LLM\nLarge language models\n"+
		"\n용어:\n• token: unit of text\n"+
		"\n3. RAG\nRetrieval", text)
}

func TestSendDigest_ChatTargets(t *testing.T) {
	fake := &fakeSender{}
	items := []models.AIInfo{{Title: "t", Content: "c"}}

	require.NoError(t, (&Notifier{api: fake, chatID: "-100123"}).SendDigest(context.Background(), "2024-01-01", items))
	require.NoError(t, (&Notifier{api: fake, chatID: "@aihub"}).SendDigest(context.Background(), "2024-01-01", items))
	require.Len(t, fake.sent, 2)

	byID := fake.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(-100123), byID.ChatID)
	byName := fake.sent[1].(tgbotapi.MessageConfig)
	assert.Equal(t, "@aihub", byName.ChannelUsername)
	assert.Contains(t, byName.Text, "1. t")
}

func TestSendDigest_Error(t *testing.T) {
	n := &Notifier{api: &fakeSender{err: errors.New("boom")}, chatID: "1"}
	assert.Error(t, n.SendDigest(context.Background(), "2024-01-01", nil))
}
