package ioc

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DEXBOT"

// envKeys 凭证类配置, 配置文件里不写时也能从环境变量读取
var envKeys = []string{
	"pocket_universe.api_key",
	"order.trojan.api_key",
	"order.binance.api_key",
	"order.binance.api_secret",
	"telegram.bot_token",
	"telegram.chat_id",
}

// InitConfig 读取配置文件, 环境变量 DEXBOT_XXX_YYY 覆盖 xxx.yyy
func InitConfig() {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	envFile := pflag.String("env", ".env", "optional dotenv file with credentials")
	pflag.Parse()

	// .env 不存在时忽略
	if err := godotenv.Load(*envFile); err == nil {
		slog.Info("loaded env file", "file", *envFile)
	}

	if err := loadConfig(*file); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func loadConfig(file string) error {
	viper.SetConfigFile(file)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key, envName(key)); err != nil {
			return err
		}
	}
	return viper.ReadInConfig()
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// unmarshalKey 和 viper.UnmarshalKey 一样解析一个配置段,
// 但每个叶子节点都经过 viper.Get, 环境变量覆盖才会生效
func unmarshalKey(key string, rawVal any) error {
	section := viper.AllSettings()
	for _, part := range strings.Split(key, ".") {
		next, ok := section[part].(map[string]any)
		if !ok {
			section = nil
			break
		}
		section = next
	}

	sub := viper.New()
	if err := sub.MergeConfigMap(section); err != nil {
		return err
	}
	return sub.Unmarshal(rawVal)
}
