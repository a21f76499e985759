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
	"airhockey/internal/client"
	"airhockey/internal/config"
	"airhockey/internal/logger"
	"airhockey/internal/netwrk"
	"airhockey/internal/renderer"
)

const (
	minTermWidth  = 20
	minTermHeight = 12

	defaultLogFile = "airhockey-client.log"
)

func main() {
	flags := pflag.NewFlagSet("airhockey-client", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file (default ./airhockey.yaml)")
	role := flags.StringP("role", "r", string(netwrk.Player1), "player1, player2 or spectator")
	config.RegisterFlags(flags)
	flags.Parse(os.Args[1:])

	if err := run(*configPath, *role); err != nil {
		fmt.Fprintln(os.Stderr, ansii.Paint(err.Error(), ansii.Colors.Red))
		os.Exit(1)
	}
}

func run(configPath, roleName string) error {
	role, err := netwrk.ParseRole(roleName)
	if err != nil {
		return err
	}
	if err := ansii.CheckTerminal(os.Stdout, minTermWidth, minTermHeight); err != nil {
		return fmt.Errorf("the client needs an interactive terminal: %w", err)
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := netwrk.Dial(ctx, cfg.Server.Addr, cfg.Server.Path, role)
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Println(ansii.Paint(fmt.Sprintf("joined %s as %s", cfg.Server.Addr, role), ansii.Colors.Green))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	kb := renderer.NewKeyboard()
	go kb.Listen(screen)

	return client.Game(ctx, conn, screen, kb, cfg.Sim.TickRate)
}
