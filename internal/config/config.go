package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the configuration loaded by the last successful LoadConfig.
var Config = Default()

type Configuration struct {
	Log    Log
	Sim    Sim
	Server Server
	Bot    Bot
}

type Log struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type Sim struct {
	// frames per second the match loop runs at
	TickRate int
	// simulated frames advanced per tick, 1 is one 60 Hz frame
	Timestep float64
}

type Server struct {
	Addr string
	Path string
}

type Bot struct {
	Enabled bool
	Seed    uint64
	Skill   float64
}

const envPrefix = "AIRHOCKEY"

var defaults = map[string]any{
	"log.level":      "info",
	"log.file":       "",
	"log.maxSize":    10,
	"log.maxBackups": 3,
	"log.maxAge":     28,
	"log.compress":   false,

	"sim.tickRate": 60,
	"sim.timestep": 1.0,

	"server.addr": "127.0.0.1:8080",
	"server.path": "/ws",

	"bot.enabled": false,
	"bot.seed":    1,
	"bot.skill":   0.7,
}

// command-line flag name to config key
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"tick-rate": "sim.tickRate",
	"timestep":  "sim.timestep",
	"addr":      "server.addr",
	"path":      "server.path",
	"bot":       "bot.enabled",
	"bot-seed":  "bot.seed",
	"bot-skill": "bot.skill",
}

var (
	mu    sync.Mutex
	flags *pflag.FlagSet
	// viper instance of the last LoadConfig that read a file
	current *viper.Viper
)

// Default returns the configuration used when no file, environment or flag
// overrides anything.
func Default() Configuration {
	v := viper.New()
	setDefaults(v)
	return read(v)
}

// RegisterFlags adds the override flags to set. Flags that are set on the
// command line win over the environment and the config file on the next
// LoadConfig.
func RegisterFlags(set *pflag.FlagSet) {
	d := Default()
	set.String("log-level", d.Log.Level, "log level (trace, debug, info, warn, error)")
	set.String("log-file", d.Log.File, "log file, rotated; empty logs to stderr")
	set.Int("tick-rate", d.Sim.TickRate, "simulation frames per second")
	set.Float64("timestep", d.Sim.Timestep, "simulated 60 Hz frames per tick")
	set.String("addr", d.Server.Addr, "server listen or dial address")
	set.String("path", d.Server.Path, "websocket endpoint path")
	set.Bool("bot", d.Bot.Enabled, "let the computer play paddle 2")
	set.Uint64("bot-seed", d.Bot.Seed, "random seed for the computer player")
	set.Float64("bot-skill", d.Bot.Skill, "computer player skill between 0 and 1")

	mu.Lock()
	flags = set
	mu.Unlock()
}

// LoadConfig reads the config file at path, or airhockey.{yaml,json,toml,...}
// in the working directory when path is empty, layers AIRHOCKEY_* environment
// variables and registered flags on top, and stores the result in Config.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	mu.Lock()
	set := flags
	mu.Unlock()
	if set != nil {
		for name, key := range flagKeys {
			if f := set.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("airhockey")
		v.AddConfigPath(".")
	}

	loaded := false
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		loaded = true
		logrus.WithField("path", v.ConfigFileUsed()).Info("loaded config")
	case errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Info("no config file found, using defaults")
	default:
		return fmt.Errorf("reading config: %w", err)
	}

	c := read(v)
	if err := c.Validate(); err != nil {
		return err
	}

	mu.Lock()
	current = nil
	if loaded {
		current = v
	}
	mu.Unlock()
	Config = c
	return nil
}

// Validate rejects settings the match loop cannot run with.
func (c Configuration) Validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tickRate must be positive, got %d", c.Sim.TickRate)
	}
	if c.Sim.Timestep <= 0 {
		return fmt.Errorf("sim.timestep must be positive, got %v", c.Sim.Timestep)
	}
	if c.Bot.Skill < 0 || c.Bot.Skill > 1 {
		return fmt.Errorf("bot.skill must be between 0 and 1, got %v", c.Bot.Skill)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Watch calls fn with the re-read configuration every time the loaded config
// file changes. It does not touch Config; fn decides what is safe to apply
// to a running process. Watch fails when LoadConfig found no file.
func Watch(fn func(Configuration)) error {
	mu.Lock()
	v := current
	mu.Unlock()
	if v == nil {
		return errors.New("watching config: no config file loaded")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.WithFields(logrus.Fields{
			"path": e.Name,
			"op":   e.Op.String(),
		}).Debug("config file changed")

		c := read(v)
		if err := c.Validate(); err != nil {
			logrus.WithError(err).Warn("ignoring invalid config change")
			return
		}
		fn(c)
	})
	v.WatchConfig()
	return nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

func read(v *viper.Viper) Configuration {
	return Configuration{
		Log: Log{
			Level:      strings.ToLower(cast.ToString(v.Get("log.level"))),
			File:       cast.ToString(v.Get("log.file")),
			MaxSize:    cast.ToInt(v.Get("log.maxSize")),
			MaxBackups: cast.ToInt(v.Get("log.maxBackups")),
			MaxAge:     cast.ToInt(v.Get("log.maxAge")),
			Compress:   cast.ToBool(v.Get("log.compress")),
		},
		Sim: Sim{
			TickRate: cast.ToInt(v.Get("sim.tickRate")),
			Timestep: cast.ToFloat64(v.Get("sim.timestep")),
		},
		Server: Server{
			Addr: cast.ToString(v.Get("server.addr")),
			Path: cast.ToString(v.Get("server.path")),
		},
		Bot: Bot{
			Enabled: cast.ToBool(v.Get("bot.enabled")),
			Seed:    cast.ToUint64(v.Get("bot.seed")),
			Skill:   cast.ToFloat64(v.Get("bot.skill")),
		},
	}
}
