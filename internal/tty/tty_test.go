package tty

import (
	"strings"
	"testing"

	"ballpit/internal/engineconfig"
	"ballpit/internal/logger"
	"ballpit/internal/physics"
	"ballpit/internal/session"
	"ballpit/internal/simconfig"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestView_CellMapping(t *testing.T) {
	v := NewView(800, 400, 80, 41, nil)
	if x, y := v.ToCell(mgl64.Vec2{15, 15}); x != 1 || y != 1 {
		t.Errorf("ToCell(15,15) = %d,%d; want 1,1", x, y)
	}
	if x, y := v.ToCell(mgl64.Vec2{-50, 9999}); x != 0 || y != 39 {
		t.Errorf("ToCell clamps to %d,%d; want 0,39", x, y)
	}
	if c := v.CellCenter(0, 0); c != (mgl64.Vec2{5, 5}) {
		t.Errorf("CellCenter(0,0) = %v, want (5,5)", c)
	}
}

func TestView_DrawsBodiesWallsAndStatus(t *testing.T) {
	screen := newScreen(t, 80, 41)
	floor, err := physics.NewWall(mgl64.Vec2{0, 395}, mgl64.Vec2{800, 395}, 10)
	if err != nil {
		t.Fatal(err)
	}
	v := NewView(800, 400, 80, 41, []physics.Wall{floor})
	frame := physics.Frame{Bodies: []physics.BodyState{
		{Position: mgl64.Vec2{105, 105}, Radius: 20, Color: 0xff0000ff},
		{Position: mgl64.Vec2{402, 203}, Radius: 1, Color: 0x00ff00ff},
	}}

	v.Draw(screen, frame, physics.NoSelection, "status")

	if r, _, style, _ := screen.GetContent(10, 10); r != bodyRune {
		t.Errorf("cell under body 0 = %q, want %q", r, bodyRune)
	} else if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("body 0 color = %v, want red", fg)
	}
	if r, _, _, _ := screen.GetContent(12, 10); r != bodyRune {
		t.Errorf("cell inside body 0 radius = %q, want %q", r, bodyRune)
	}
	if r, _, _, _ := screen.GetContent(40, 20); r != bodyRune {
		t.Errorf("tiny body not drawn in its center cell, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(30, 30); r != ' ' {
		t.Errorf("empty cell = %q, want blank", r)
	}
	if r, _, _, _ := screen.GetContent(5, 39); r != wallRune {
		t.Errorf("floor cell = %q, want %q", r, wallRune)
	}
	if r, _, _, _ := screen.GetContent(0, 40); r != 's' {
		t.Errorf("status line starts with %q, want 's'", r)
	}
}

func newApp(t *testing.T) (*App, *session.Session) {
	t.Helper()
	cfg := simconfig.Default()
	cfg.Scene.Bodies = 0
	cfg.Scene.Width, cfg.Scene.Height = 800, 400
	sess, err := session.New(cfg, engineconfig.Default(), logger.New(""))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return NewApp(newScreen(t, 80, 41), sess), sess
}

func TestApp_MouseDragGrabsBody(t *testing.T) {
	app, sess := newApp(t)
	i, err := sess.Spawn(mgl64.Vec2{205, 105}, 20)
	if err != nil {
		t.Fatal(err)
	}

	app.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	if sess.Inputs.Selected != i || !sess.Inputs.Dragging {
		t.Fatalf("press: Selected = %d, Dragging = %v", sess.Inputs.Selected, sess.Inputs.Dragging)
	}
	app.HandleEvent(tcell.NewEventMouse(25, 10, tcell.Button1, tcell.ModNone))
	if sess.Inputs.Cursor != (mgl64.Vec2{255, 105}) {
		t.Errorf("Cursor = %v, want (255,105)", sess.Inputs.Cursor)
	}
	app.HandleEvent(tcell.NewEventMouse(25, 10, tcell.ButtonNone, tcell.ModNone))
	if sess.Inputs.HasSelection() {
		t.Errorf("selection kept after button release")
	}
}

func TestApp_Keys(t *testing.T) {
	app, sess := newApp(t)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	if !sess.Inputs.Paused {
		t.Errorf("p did not pause")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if sess.World.Len() != 1 {
		t.Errorf("space spawned %d bodies, want 1", sess.World.Len())
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if g := sess.Inputs.Gravity; g.X() <= 0 {
		t.Errorf("right arrow gravity = %v, want tilted toward +x", g)
	}

	for _, r := range ":reset -n 3" {
		app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	if !strings.HasPrefix(app.status(), ":reset") {
		t.Errorf("status while editing = %q", app.status())
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if sess.World.Len() != 3 {
		t.Errorf("reset command left %d bodies, want 3", sess.World.Len())
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !app.Quit() {
		t.Errorf("q did not quit")
	}
}

func TestApp_TickPausedLeavesWorld(t *testing.T) {
	app, sess := newApp(t)
	sess.Spawn(mgl64.Vec2{400, 100}, 10)
	sess.Inputs.Paused = true
	before, _ := sess.World.Snapshot()
	app.Tick(1.0 / 60)
	after, _ := sess.World.Snapshot()
	if before.Bodies[0] != after.Bodies[0] {
		t.Errorf("paused tick moved body: %v -> %v", before.Bodies[0], after.Bodies[0])
	}
}
