package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/topi314/shtrix/internal/xtime"
	"github.com/topi314/shtrix/server/card"
	"github.com/topi314/shtrix/server/export"
)

// LoadConfig decodes cfgPath over the defaults. A missing file is not an error
// when allowMissing is set.
func LoadConfig(cfgPath string, allowMissing bool) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(cfgPath)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	md, err := toml.NewDecoder(file).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("Unknown config keys", slog.Any("keys", undecoded))
	}

	return cfg, nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr: ":8085",
			RateLimit: RateLimitConfig{
				Every: xtime.Duration(200 * time.Millisecond),
				Burst: 10,
			},
		},
		Card:  card.DefaultConfig(),
		Print: export.DefaultPrintConfig(),
	}
}

type Config struct {
	Dev    bool               `toml:"dev"`
	Log    LogConfig          `toml:"log"`
	Server ServerConfig       `toml:"server"`
	Card   card.Config        `toml:"card"`
	Print  export.PrintConfig `toml:"print"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nCard: %s\nPrint: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.Card,
		c.Print,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
	LogStatic bool       `toml:"log_static"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t\n LogStatic: %t",
		c.Level,
		c.Format,
		c.AddSource,
		c.LogStatic,
	)
}

type ServerConfig struct {
	Addr      string          `toml:"addr"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n RateLimit: %s",
		c.Addr,
		c.RateLimit,
	)
}

// RateLimitConfig limits generation and archive requests. A zero Every disables it.
type RateLimitConfig struct {
	Every xtime.Duration `toml:"every"`
	Burst int            `toml:"burst"`
}

func (c RateLimitConfig) String() string {
	return fmt.Sprintf("%s (burst %d)", c.Every, c.Burst)
}
