package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/notification"
	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
)

var _ notification.Notifier = (*Service)(nil)

const DefaultAPIURL = "https://api.telegram.org"

type Service struct {
	apiURL   string
	botToken string
	chatId   string
	cli      *http.Client
}

type Option func(s *Service)

func WithHTTPClient(cli *http.Client) Option {
	return func(s *Service) {
		s.cli = cli
	}
}

// WithAPIURL 替换 Telegram API 地址, 用于自建代理或测试
func WithAPIURL(apiURL string) Option {
	return func(s *Service) {
		if apiURL != "" {
			s.apiURL = strings.TrimRight(apiURL, "/")
		}
	}
}

func NewService(botToken, chatId string, opts ...Option) *Service {
	svc := &Service{
		apiURL:   DefaultAPIURL,
		botToken: botToken,
		chatId:   chatId,
		cli:      httpx.NewClient(0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type sendMessageReq struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

func (s *Service) Notify(ctx context.Context, text string) error {
	err := httpx.DoJSON(ctx, s.cli, httpx.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.botToken),
		Body:   sendMessageReq{ChatId: s.chatId, Text: text},
	}, nil)
	if err != nil {
		// 错误信息里不能带 bot token
		return fmt.Errorf("%w: telegram: %s", notification.ErrDeliveryFailed, strings.ReplaceAll(err.Error(), s.botToken, "***"))
	}
	return nil
}
