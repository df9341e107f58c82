package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	windowWidth  = 1280
	windowHeight = 720
	targetFPS    = 60
)

// Run opens a resizable window titled title and runs the main loop. Each frame it calls update
// (input, file change handling), then clears the screen and calls draw. ESC is reserved for the
// terminal; the window closes via its close button.
func Run(title string, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 30, 34, 255))
		draw()
		rl.EndDrawing()
	}
}
