package ioc

import (
	"os"
	"path/filepath"

	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB() *gorm.DB {
	type Config struct {
		Name string `mapstructure:"name"`
	}

	cfg := Config{
		Name: "./data/tokens.db",
	}
	if err := unmarshalKey("database", &cfg); err != nil {
		panic(err)
	}

	if dir := filepath.Dir(cfg.Name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(err)
	}
	if err = repo.InitTables(db); err != nil {
		panic(err)
	}
	return db
}
