package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Width, Height int32
	Title         string
	Background    rl.Color
	TargetFPS     int32
	// Setup, if set, runs once the GL context exists and before the first frame.
	Setup func()
}

// Run opens the window and runs the main loop. Each frame it calls update (input, state), then clears the
// screen and calls draw. ESC is left to the terminal; the window closes with its close button.
// close, if set, runs while the GL context still exists so GPU resources can be released.
func Run(w Window, update, draw, close func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := w.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)
	if w.Setup != nil {
		w.Setup()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
	if close != nil {
		close()
	}
}
