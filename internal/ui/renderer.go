package ui

import (
	"image/color"

	"github.com/arzhanov/draughtsmcts/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	ButtonColor    color.RGBA
	ButtonHover    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Softer yellow-green (reduced alpha)
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
		ButtonColor:    color.RGBA{60, 64, 72, 255},    // Medium gray
		ButtonHover:    color.RGBA{80, 84, 92, 255},    // Lighter gray
	}
}

// Renderer handles all drawing operations.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the 8x8 board, light and dark squares alike — pieces only
// ever sit on the dark ones, but the light squares still need a color.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x := r.s(col * r.squareSize)
			y := r.s(row * r.squareSize)

			var c color.RGBA
			if (row+col)%2 == 0 {
				c = r.theme.DarkSquare
			} else {
				c = r.theme.LightSquare
			}

			vector.DrawFilledRect(screen, x, y, r.s(r.squareSize), r.s(r.squareSize), c, false)
		}
	}
}

// DrawHighlights draws selection and legal move highlights.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, legalMoves board.Bitboard, lastMove board.Move, lastMoveValid bool) {
	if lastMoveValid {
		r.highlightSquare(screen, board.Square(lastMove.From), r.theme.LastMoveColor)
		for _, sq := range lastMove.Path {
			r.highlightSquare(screen, board.Square(sq), r.theme.LastMoveColor)
		}
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, idx := range board.BitsOf(legalMoves) {
		r.drawLegalMoveIndicator(screen, board.Square(idx))
	}
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	radius := r.s(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws every stone of pos, skipping the one currently being
// dragged if any.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos board.Position, dragging bool, dragSquare board.Square) {
	draw := func(occ board.Bitboard, white bool) {
		for _, idx := range board.BitsOf(occ) {
			sq := board.Square(idx)
			if dragging && sq == dragSquare {
				continue
			}
			stone := stoneFor(pos, idx, white)
			x, y := r.SquareToScreen(sq)
			r.sprites.DrawPieceAt(screen, stone, int(r.s(x)), int(r.s(y)))
		}
	}
	draw(pos.White, true)
	draw(pos.Black, false)
}

// stoneFor resolves a stone's sprite, given its color and whether it sits
// on pos's king bitboard.
func stoneFor(pos board.Position, idx int, white bool) Stone {
	king := pos.Queens.HasBit(idx)
	switch {
	case white && king:
		return WhiteKing
	case white:
		return WhiteMan
	case king:
		return BlackKing
	default:
		return BlackMan
	}
}

// DrawDraggedPiece draws the piece being dragged at the mouse position.
// mouseX, mouseY are in logical coordinates (will be scaled for drawing).
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, stone Stone, mouseX, mouseY int) {
	halfSize := int(r.s(r.squareSize)) / 2
	x := int(r.s(mouseX)) - halfSize
	y := int(r.s(mouseY)) - halfSize

	r.sprites.DrawPieceAt(screen, stone, x, y)
}

// SquareToScreen converts a dark-square index to screen coordinates. The
// board is drawn in raster order: row 0 at the top, matching the
// coordinate system OnClick's x*8/y*8 division already uses.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	col, row := board.IndexToCoords(int(sq))
	x := col * r.squareSize
	y := row * r.squareSize
	return x, y
}

// ScreenToSquare converts screen coordinates to a dark-square index, or
// NoSquare if the point lands on a light square or off the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col := x / r.squareSize
	row := y / r.squareSize
	if (col+row)%2 != 0 {
		return board.NoSquare
	}
	return board.Square(board.CoordsToIndex(col, row))
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
