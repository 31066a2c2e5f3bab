package ioc

import (
	"log/slog"
	"os"
	"strings"

)

func InitLogger() *slog.Logger {
	type Config struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	var cfg Config
	if err := unmarshalKey("log", &cfg); err != nil {
		panic(err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
