package main

import (
	"fmt"
	"os"

	"ballpit/internal/debug"
	"ballpit/internal/engineconfig"
	"ballpit/internal/env"
	"ballpit/internal/fonts"
	"ballpit/internal/graphics"
	"ballpit/internal/logger"
	"ballpit/internal/scene"
	"ballpit/internal/session"
	"ballpit/internal/simconfig"
	"ballpit/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ballpit:", err)
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
	reg := sess.Commands()
	term := terminal.New(log, func(line string) { sess.Run(reg, line) })
	scn := scene.New(sess)
	scn.InputBlocked = term.IsOpen
	dbg := debug.New(sess.Stats)
	log.Log("ESC opens the console; type help for commands")

	fontPath := fonts.FindFirst()
	fontLoaded := false
	update := func(dt float32) {
		term.Update()
		scn.Update(dt)
		dbg.ShowFPS = sess.Prefs.ShowFPS
		dbg.ShowMemAlloc = sess.Prefs.ShowMemAlloc
		dbg.ShowStats = sess.Prefs.ShowStats
	}
	draw := func() {
		// Fonts need the GL context, which exists from the first frame on.
		if !fontLoaded && fontPath != "" {
			fontLoaded = true
			if f := rl.LoadFont(fontPath); f.Texture.ID != 0 {
				term.SetFont(f)
				dbg.SetFont(f)
			}
		}
		scn.Draw()
		term.Draw()
		dbg.Draw()
	}
	graphics.Run(graphics.Window{
		Width:     int32(prefs.WindowWidth),
		Height:    int32(prefs.WindowHeight),
		Title:     "ballpit",
		TargetFPS: int32(prefs.TargetFPS),
	}, update, draw)
	return nil
}
