package main

import (
	"fmt"
	"os"

	"ballpit/internal/engineconfig"
	"ballpit/internal/env"
	"ballpit/internal/logger"
	"ballpit/internal/session"
	"ballpit/internal/simconfig"
	"ballpit/internal/tty"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ballpit-tty:", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(logger.DefaultPath)
	if err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	}
	cfg, err := simconfig.LoadFromEnv()
	if err != nil {
		return err
	}
	prefs, _ := engineconfig.Load()

	sess, err := session.New(cfg, prefs, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	tty.NewApp(screen, sess).Run()
	return nil
}
