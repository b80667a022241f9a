package cmd

import (
	"errors"

	"github.com/example/aihub/internal/scheduler"
	"github.com/example/aihub/internal/telegram"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send today's lesson digest to Telegram once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.DigestEnabled() {
			return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHANNEL_ID must be set")
		}
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChannelID)
		if err != nil {
			return err
		}
		return scheduler.New(a.content, notifier, scheduler.Options{
			Location: cfg.Location,
			Logger:   logger,
			Recorder: a.metrics,
		}).SendDigest(cmd.Context())
	},
}
