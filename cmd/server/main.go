package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"airhockey/internal/bot"
	"airhockey/internal/config"
	"airhockey/internal/hockey"
	"airhockey/internal/logger"
	"airhockey/internal/match"
	"airhockey/internal/netwrk"
)

const shutdownWait = 5 * time.Second

func main() {
	flags := pflag.NewFlagSet("airhockey-server", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file (default ./airhockey.yaml)")
	config.RegisterFlags(flags)
	flags.Parse(os.Args[1:])

	if err := run(*configPath); err != nil {
		logger.Log.WithError(err).Error(logger.ServerFailedMsg)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.LoadConfig(configPath); err != nil {
		return err
	}
	cfg := config.Config
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer logger.Close()

	if err := config.Watch(func(c config.Configuration) {
		logger.Reload(c.Log)
	}); err != nil {
		logger.Log.WithError(err).Debug(logger.WatchSkippedMsg)
	}

	hub := netwrk.NewHub()
	mux := http.NewServeMux()
	mux.Handle(cfg.Server.Path, hub)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	var player2 match.InputSource = hub
	if cfg.Bot.Enabled {
		player2 = bot.New(cfg.Bot)
		hub.Occupy(hockey.Player2)
		logger.Log.Info(logger.BotEnabledMsg, "player2", cfg.Bot.Skill)
	}
	m := match.New(cfg.Sim, hub, player2, hub)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info(logger.ServerListeningMsg, cfg.Server.Addr, cfg.Server.Path)
		serveErr <- srv.ListenAndServe()
	}()
	matchDone := make(chan error, 1)
	go func() { matchDone <- m.Run(ctx) }()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		} else {
			err = fmt.Errorf("serving %s: %w", cfg.Server.Addr, err)
		}
	}

	cancel()
	<-matchDone
	hub.Close()
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownWait)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = fmt.Errorf("shutting down: %w", serr)
	}
	logger.Log.Info(logger.ServerStoppedMsg)
	return err
}
