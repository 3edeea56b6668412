package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Width, Height int32
	Title         string
	TargetFPS     int32
}

// Run opens the window and runs the main loop. Each frame it calls update with the frame time
// in seconds (input + simulation), then clears the screen and calls draw.
// ESC is left to the console overlay; the window closes via its close button.
func Run(win Window, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(win.TargetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 24, 255))
		draw()
		rl.EndDrawing()
	}
}
