package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/atomicstack/gridmenu/internal/app"
	"github.com/atomicstack/gridmenu/internal/clock"
	"github.com/atomicstack/gridmenu/internal/menu"
	"github.com/atomicstack/gridmenu/internal/screens"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const envPrefix = "GRIDMENU"

const (
	keyListen          = "listen"
	keyCatalog         = "catalog"
	keyPollInterval    = "poll-interval"
	keyTick            = "tick"
	keyRefreshInterval = "refresh-interval"
	keyConsole         = "console"
	keyMenu            = "menu"
	keyTrace           = "trace"
	keyLogFile         = "log-file"
	keyConfig          = "config"
)

var keys = []string{
	keyListen, keyCatalog, keyPollInterval, keyTick, keyRefreshInterval,
	keyConsole, keyMenu, keyTrace, keyLogFile, keyConfig,
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered defaults < config file < GRIDMENU_* environment < flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	v := viper.New()
	v.SetDefault(keyListen, "127.0.0.1:8765")
	v.SetDefault(keyCatalog, "")
	v.SetDefault(keyPollInterval, 2*time.Second)
	v.SetDefault(keyTick, clock.DefaultTick)
	v.SetDefault(keyRefreshInterval, menu.DefaultRefreshInterval)
	v.SetDefault(keyConsole, false)
	v.SetDefault(keyMenu, screens.BrowserName)
	v.SetDefault(keyTrace, false)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyConfig, "")
	for _, key := range keys {
		if value, ok := env[envKey(key)]; ok {
			v.Set(key, value)
		}
	}

	fs := flag.NewFlagSet("gridmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String(keyListen, v.GetString(keyListen), "address of the admin API and websocket endpoint (empty disables it)")
	fs.String(keyCatalog, v.GetString(keyCatalog), "path to the YAML listing catalogue")
	fs.Duration(keyPollInterval, v.GetDuration(keyPollInterval), "how often the catalogue file is checked for changes")
	fs.Duration(keyTick, v.GetDuration(keyTick), "duration of one engine tick")
	fs.Int(keyRefreshInterval, v.GetInt(keyRefreshInterval), "ticks between refresh passes")
	fs.Bool(keyConsole, v.GetBool(keyConsole), "show menus in this terminal")
	fs.String(keyMenu, v.GetString(keyMenu), "menu opened for new viewers")
	fs.Bool(keyTrace, v.GetBool(keyTrace), "enable verbose JSON trace logging")
	fs.String(keyLogFile, v.GetString(keyLogFile), "path to the log file")
	fs.String(keyConfig, v.GetString(keyConfig), "path to a YAML/TOML/JSON config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	file := v.GetString(keyConfig)
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config file %s not found", file)
			}
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		App: app.Config{
			Listen:          v.GetString(keyListen),
			CatalogPath:     v.GetString(keyCatalog),
			PollInterval:    v.GetDuration(keyPollInterval),
			Tick:            v.GetDuration(keyTick),
			RefreshInterval: v.GetInt(keyRefreshInterval),
			Console:         v.GetBool(keyConsole),
			Menu:            v.GetString(keyMenu),
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Trace:    v.GetBool(keyTrace),
		},
		File:  file,
		Flags: make(map[string]string, len(keys)),
		Args:  append([]string(nil), args...),
	}
	for _, key := range keys {
		cfg.Flags[key] = v.GetString(key)
	}
	return cfg, nil
}

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Tick <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", a.Tick)
	}
	if a.RefreshInterval <= 0 {
		return fmt.Errorf("refresh-interval must be > 0 (got %d)", a.RefreshInterval)
	}
	if a.CatalogPath != "" && a.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be > 0 (got %s)", a.PollInterval)
	}
	if strings.TrimSpace(a.Listen) == "" && !a.Console {
		return errors.New("nothing to serve: set listen or enable console")
	}
	return nil
}
