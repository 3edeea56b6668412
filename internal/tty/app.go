package tty

import (
	"fmt"
	"time"

	"ballpit/internal/commands"
	"ballpit/internal/session"

	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	tiltStepDeg   = 15
	maxTiltDeg    = 90
)

// App runs a session in a terminal: mouse drags grab bodies, keys control the simulation and
// ':' opens a command line for the console commands.
type App struct {
	screen  tcell.Screen
	sess    *session.Session
	reg     *commands.Registry
	view    *View
	buttons tcell.ButtonMask
	tiltDeg float64
	cmdline []rune
	editing bool
	quit    bool
}

// NewApp binds sess to an initialized screen.
func NewApp(screen tcell.Screen, sess *session.Session) *App {
	cols, rows := screen.Size()
	return &App{
		screen: screen,
		sess:   sess,
		reg:    sess.Commands(),
		view:   NewView(sess.Config.Scene.Width, sess.Config.Scene.Height, cols, rows, sess.World.Walls()),
	}
}

// Run polls events on a separate goroutine and handles them, steps and draws on the caller's
// goroutine until the user quits.
func (a *App) Run() {
	a.screen.EnableMouse()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.HandleEvent(ev)
		case now := <-ticker.C:
			a.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Tick steps the simulation by dt seconds and redraws.
func (a *App) Tick(dt float64) {
	a.sess.Frame(dt)
	frame, err := a.sess.World.Snapshot()
	if err != nil {
		a.sess.Log.Logf("snapshot: %v", err)
		return
	}
	a.view.Draw(a.screen, frame, a.sess.Inputs.Selected, a.status())
}

// Quit reports whether the user asked to leave.
func (a *App) Quit() bool {
	return a.quit
}

func (a *App) status() string {
	if a.editing {
		return ":" + string(a.cmdline)
	}
	lines := a.sess.Log.Lines()
	last := ""
	if len(lines) > 0 {
		last = lines[len(lines)-1]
	}
	return fmt.Sprintf(" %s | p pause  space spawn  r reset  ←/→ tilt  : cmd  q quit | %s", a.sess.Stats(), last)
}

// HandleEvent applies one terminal event to the session.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.view.Resize(cols, rows, a.sess.World.Walls())
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		if a.editing {
			a.handleCmdline(ev)
			return
		}
		a.handleKey(ev)
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := a.view.CellCenter(x, y)
	btn := ev.Buttons() & (tcell.Button1 | tcell.Button2)
	prev := a.buttons
	a.buttons = btn
	switch {
	case prev == tcell.ButtonNone && btn&tcell.Button1 != 0:
		a.sess.PointerDown(p, true)
	case prev == tcell.ButtonNone && btn&tcell.Button2 != 0:
		a.sess.PointerDown(p, false)
	case prev != tcell.ButtonNone && btn == tcell.ButtonNone:
		a.sess.PointerMove(p)
		a.sess.PointerUp()
	default:
		a.sess.PointerMove(p)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyLeft:
		a.tilt(-tiltStepDeg)
	case tcell.KeyRight:
		a.tilt(tiltStepDeg)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.quit = true
		case 'p':
			a.sess.TogglePause()
			a.sess.Log.Logf("simulation %s", a.sess.State())
		case ' ':
			if _, err := a.sess.Spawn(a.sess.Inputs.Cursor, a.sess.RandomRadius()); err != nil {
				a.sess.Log.Logf("spawn: %v", err)
			}
		case 'r':
			a.sess.Reset(a.sess.Config.Scene.Bodies)
		case ':':
			a.editing = true
			a.cmdline = a.cmdline[:0]
		}
	}
}

func (a *App) handleCmdline(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.editing = false
	case tcell.KeyEnter:
		a.editing = false
		a.sess.Run(a.reg, string(a.cmdline))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(a.cmdline); n > 0 {
			a.cmdline = a.cmdline[:n-1]
		}
	case tcell.KeyRune:
		a.cmdline = append(a.cmdline, ev.Rune())
	}
}

func (a *App) tilt(step float64) {
	next := a.tiltDeg + step
	if next < -maxTiltDeg || next > maxTiltDeg {
		return
	}
	a.tiltDeg = next
	a.sess.Inputs.Gravity = session.Tilt(a.sess.Inputs.Gravity, a.tiltDeg)
}
