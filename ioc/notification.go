package ioc

import (
	"log/slog"
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/notification"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/notification/telegram"
)

// InitNotifier 未配置 telegram 时只打印日志
func InitNotifier(cli *http.Client) notification.Notifier {
	type Config struct {
		BotToken string `mapstructure:"bot_token"`
		ChatId   string `mapstructure:"chat_id"`
		ApiURL   string `mapstructure:"api_url"`
	}

	var cfg Config
	if err := unmarshalKey("telegram", &cfg); err != nil {
		panic(err)
	}
	if cfg.BotToken == "" || cfg.ChatId == "" {
		slog.Warn("telegram not configured, notifications go to the log")
		return notification.NewConsoleNotifier()
	}
	return notification.Multi(
		notification.NewConsoleNotifier(),
		telegram.NewService(cfg.BotToken, cfg.ChatId, telegram.WithHTTPClient(cli), telegram.WithAPIURL(cfg.ApiURL)),
	)
}
