package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type AppSubConfig struct {
	PageSize int    `mapstructure:"page_size"`
	Currency string `mapstructure:"currency"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load reads configuration from the given file path (e.g.
// "config.yaml"). A missing file is fine, defaults apply.
func Load(path string) (*Config, error) {
	var loadErr error
	once.Do(func() {
		v := viper.New()
		v.SetConfigFile(path)

		v.SetDefault("server.address", "127.0.0.1")
		v.SetDefault("server.port", 8019)
		v.SetDefault("server.mode", "release")
		v.SetDefault("database.path", "data/tenants.db")
		v.SetDefault("database.log_mode", false)
		v.SetDefault("jwt.secret", "change-me")
		v.SetDefault("jwt.issuer", "tenants-manager")
		v.SetDefault("jwt.expire_hours", 24)
		v.SetDefault("log.file", "logs/app.log")
		v.SetDefault("log.level", "info")
		v.SetDefault("backup.dir", "backups")
		v.SetDefault("app.page_size", 20)
		v.SetDefault("app.currency", "EUR")

		if _, err := os.Stat(path); err == nil {
			if err := v.ReadInConfig(); err != nil {
				loadErr = fmt.Errorf("read config: %w", err)
				return
			}
		}

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}
		appConfig = cfg
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}
