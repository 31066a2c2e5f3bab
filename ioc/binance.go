package ioc

import (
	"fmt"
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	exbinance "github.com/SAFFEMIRZA/dex-bot/internal/service/exchange/binance"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange/trojan"
	"github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"
)

func InitBinanceCli() *binance.Client {
	type Config struct {
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	}

	var cfg Config
	if err := unmarshalKey("order.binance", &cfg); err != nil {
		panic(err)
	}

	return binance.NewClient(cfg.ApiKey, cfg.ApiSecret)
}

// InitOrderService 按 order.provider 选择下单渠道, 默认 trojan
func InitOrderService(cli *http.Client) exchange.OrderService {
	provider := viper.GetString("order.provider")
	switch provider {
	case "", "trojan":
		type Config struct {
			BaseURL string `mapstructure:"base_url"`
			ApiKey  string `mapstructure:"api_key"`
		}
		var cfg Config
		if err := unmarshalKey("order.trojan", &cfg); err != nil {
			panic(err)
		}
		if cfg.BaseURL == "" {
			panic("no trojan base url set")
		}
		return trojan.NewService(cfg.BaseURL, cfg.ApiKey, trojan.WithHTTPClient(cli))
	case "binance":
		return exbinance.NewOrderService(InitBinanceCli(), viper.GetString("order.binance.quote"))
	default:
		panic(fmt.Sprintf("unknown order provider %q", provider))
	}
}
