// draughtsmcts - an international draughts game driven by a Monte Carlo
// tree search engine, built with Ebitengine.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/arzhanov/draughtsmcts/internal/ui"
)

func main() {
	game := ui.NewGame()
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("draughtsmcts")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Enable smooth scaling when window is resized or fullscreen
	ebiten.SetScreenFilterEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
