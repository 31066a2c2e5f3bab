package ioc

import (
	"net/http"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
)

// InitHTTPClient 所有外部 HTTP 服务共用一个 client
func InitHTTPClient() *http.Client {
	type Config struct {
		Timeout time.Duration `mapstructure:"timeout"`
	}

	var cfg Config
	if err := unmarshalKey("http", &cfg); err != nil {
		panic(err)
	}
	return httpx.NewClient(cfg.Timeout)
}
