// Package ui implements the draughts game UI using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// Stone identifies one of the four piece sprites: a man or a king, in
// either color.
type Stone int

const (
	WhiteMan Stone = iota
	WhiteKing
	BlackMan
	BlackKing
)

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[Stone]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[Stone]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
	sm.loadPieces()
	return sm
}

// GetPiece returns the sprite for a stone.
func (sm *SpriteManager) GetPiece(s Stone) *ebiten.Image {
	return sm.pieces[s]
}

// pieceFiles maps stones to their asset file paths.
var pieceFiles = map[Stone]string{
	WhiteMan:  "assets/pieces/man_white.svg",
	WhiteKing: "assets/pieces/king_white.svg",
	BlackMan:  "assets/pieces/man_black.svg",
	BlackKing: "assets/pieces/king_black.svg",
}

// loadPieces loads all piece sprites from embedded SVG files.
func (sm *SpriteManager) loadPieces() {
	// Render at higher resolution for better quality when scaled
	renderSize := int(float64(sm.size) * sm.renderScale)

	for stone, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read piece asset %s: %v", path, err)
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Printf("Failed to parse SVG %s: %v", path, err)
			continue
		}

		// Set target size at higher resolution for quality
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		// Create RGBA image and render with anti-aliasing at high resolution
		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[stone] = ebiten.NewImageFromImage(rgba)
	}
}

// DrawPieceAt draws a stone at the given pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, s Stone, x, y int) {
	sprite := sm.GetPiece(s)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the display size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}

// SetScale is a no-op placeholder kept for Renderer.SetScale's call site —
// pieces are rendered at a fixed 3x oversample regardless of the display's
// HiDPI factor, since DrawPieceAt already scales the final blit.
func (sm *SpriteManager) SetScale(scale float64) {}
