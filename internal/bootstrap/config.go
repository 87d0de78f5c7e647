package bootstrap

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mway1/gametree"
)

type Config struct {
	StartFEN        string `mapstructure:"START_FEN"`
	AutoPromote     bool   `mapstructure:"AUTO_PROMOTE"`
	ForcedEnPassant bool   `mapstructure:"FORCED_EN_PASSANT"`
	NoVariations    bool   `mapstructure:"NO_VARIATIONS"`
	ShowArrows      bool   `mapstructure:"SHOW_ARROWS"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Development     bool   `mapstructure:"DEVELOPMENT"`
}

// Setup reads cfgPath when it exists, then GAMETREE_* environment
// variables, over the built-in defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("START_FEN", gametree.StartingFEN)
	v.SetDefault("AUTO_PROMOTE", false)
	v.SetDefault("FORCED_EN_PASSANT", false)
	v.SetDefault("NO_VARIATIONS", false)
	v.SetDefault("SHOW_ARROWS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVELOPMENT", false)

	v.SetEnvPrefix("GAMETREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			v.SetConfigFile(cfgPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Board returns the board toggles for a session.
func (c Config) Board() gametree.Config {
	return gametree.Config{
		AutoPromote:     c.AutoPromote,
		ForcedEnPassant: c.ForcedEnPassant,
		NoVariations:    c.NoVariations,
		ShowArrows:      c.ShowArrows,
	}
}
