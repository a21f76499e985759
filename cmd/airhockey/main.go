package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell"
	"github.com/spf13/pflag"

	"airhockey/internal/ansii"
	"airhockey/internal/bot"
	"airhockey/internal/config"
	"airhockey/internal/logger"
	"airhockey/internal/match"
	"airhockey/internal/renderer"
)

const (
	minTermWidth  = 20
	minTermHeight = 12

	// the screen owns the terminal, so logs always go to a file
	defaultLogFile = "airhockey.log"
)

func main() {
	flags := pflag.NewFlagSet("airhockey", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file (default ./airhockey.yaml)")
	config.RegisterFlags(flags)
	flags.Parse(os.Args[1:])

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, ansii.Paint(err.Error(), ansii.Colors.Red))
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := ansii.CheckTerminal(os.Stdout, minTermWidth, minTermHeight); err != nil {
		return fmt.Errorf("airhockey needs an interactive terminal: %w", err)
	}
	if err := config.LoadConfig(configPath); err != nil {
		return err
	}
	cfg := config.Config
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer logger.Close()

	if err := config.Watch(func(c config.Configuration) {
		logger.Reload(c.Log)
	}); err != nil {
		logger.Log.WithError(err).Debug(logger.WatchSkippedMsg)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	kb := renderer.NewKeyboard()
	go kb.Listen(screen)

	var player2 match.InputSource = kb
	if cfg.Bot.Enabled {
		player2 = bot.New(cfg.Bot)
		logger.Log.Info(logger.BotEnabledMsg, "player2", cfg.Bot.Skill)
	}
	m := match.New(cfg.Sim, kb, player2, renderer.Screen{Screen: screen})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		select {
		case <-kb.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	return m.Run(ctx)
}
