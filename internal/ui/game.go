package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/arzhanov/draughtsmcts/internal/board"
	"github.com/arzhanov/draughtsmcts/internal/controller"
	"github.com/arzhanov/draughtsmcts/internal/mcts"
	"github.com/arzhanov/draughtsmcts/internal/simulate"
	"github.com/arzhanov/draughtsmcts/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640 // Match board height to eliminate unused space
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by InputHandler.
var UIScale float64 = 1.0

// mctsDifficulty maps a persisted storage.Difficulty onto the search
// package's own budget table.
func mctsDifficulty(d storage.Difficulty) mcts.Difficulty {
	switch d {
	case storage.DifficultyEasy:
		return mcts.Easy
	case storage.DifficultyHard:
		return mcts.Hard
	default:
		return mcts.Medium
	}
}

// Game implements ebiten.Game interface.
type Game struct {
	// Core game state
	position board.Position
	history  []board.Move

	// UI state. Selection itself lives inside whichever HumanController is
	// seated for the side to move; dragging and the last-move highlight are
	// purely cosmetic state the controller doesn't need to know about.
	dragging    bool
	dragSquare  board.Square
	lastMove    board.Move
	hasLastMove bool

	// Game settings
	mode        storage.GameMode
	difficulty  storage.Difficulty
	playerColor storage.PlayerColor // which color the human plays in vs-computer mode

	// Storage
	store *storage.Storage
	prefs *storage.UserPreferences
	stats *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	audio    *AudioManager

	// Search engine and the two seats at the board
	engine *mcts.Engine
	white  controller.Controller
	black  controller.Controller

	// In-flight move request
	thinking     bool
	thinkingCtrl controller.Controller
	moveResult   chan board.Position

	// Game state
	gameOver   bool
	gameResult string
	startedAt  time.Time

	// HiDPI scaling
	scale float64
}

// NewGame creates a new draughts game.
func NewGame() *Game {
	sim := simulate.NewHostSimulator(mcts.NumWorkers)

	g := &Game{
		position:    board.StartingPosition,
		mode:        storage.ModeHumanVsComputer,
		difficulty:  storage.DifficultyMedium,
		playerColor: storage.ColorWhite,
		renderer:    NewRenderer(BoardSize, SquareSize),
		input:       NewInputHandler(),
		audio:       NewAudioManager(),
		engine:      mcts.NewEngine(sim),
		moveResult:  make(chan board.Position, 1),
		startedAt:   time.Now(),
	}

	var err error
	g.store, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	g.loadPreferences()
	g.setupSeats()
	g.panel = NewPanel(g)

	return g
}

// loadPreferences loads user preferences and stats from storage.
func (g *Game) loadPreferences() {
	if g.store == nil {
		g.prefs = storage.DefaultPreferences()
		g.stats = storage.NewGameStats()
		return
	}

	var err error
	g.prefs, err = g.store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}
	g.stats, err = g.store.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		g.stats = storage.NewGameStats()
	}

	g.mode = g.prefs.GameMode
	g.difficulty = g.prefs.Difficulty
	g.playerColor = g.prefs.PlayerColor
	g.audio.SetEnabled(g.prefs.SoundEnabled)
	g.engine.SetDifficulty(mctsDifficulty(g.difficulty))
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.GameMode = g.mode
	g.prefs.Difficulty = g.difficulty
	g.prefs.PlayerColor = g.playerColor
	g.prefs.SoundEnabled = g.audio.IsEnabled()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// setupSeats assigns a Controller to each color according to the current
// mode and playerColor, cancelling any move already in flight first.
func (g *Game) setupSeats() {
	g.cancelInFlightMove()

	human := controller.NewHumanController()
	if g.mode == storage.ModeHumanVsHuman {
		g.white = human
		g.black = human
		return
	}

	computer := controller.NewComputerController(g.engine)
	if g.playerColor == storage.ColorBlack {
		g.white = computer
		g.black = human
	} else {
		g.white = human
		g.black = computer
	}
}

// seatFor returns the controller seated for the side to move in pos.
func (g *Game) seatFor(pos board.Position) controller.Controller {
	if pos.BlackTurn {
		return g.black
	}
	return g.white
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()

	if g.panel.HandleInput(g.input) {
		return nil
	}

	g.handleBoardInput()
	g.checkMoveResult()
	g.startMoveRequest()

	return nil
}

// handleBoardInput forwards board clicks and drag state to the active
// seat's controller. ComputerController.OnClick is a no-op, so it is
// always safe to forward regardless of whose turn it is.
func (g *Game) handleBoardInput() {
	if g.gameOver {
		return
	}

	mx, my := g.input.MousePosition()
	if mx < 0 || mx >= BoardSize || my < 0 || my >= BoardSize {
		return
	}

	if g.input.IsLeftJustPressed() {
		bx := float64(mx) / float64(BoardSize)
		by := float64(my) / float64(BoardSize)
		g.seatFor(g.position).OnClick(bx, by)

		if sel, _ := g.selection(); sel != board.NoSquare {
			g.dragging = true
			g.dragSquare = sel
		} else {
			g.dragging = false
			g.dragSquare = board.NoSquare
		}
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.dragging = false
		g.dragSquare = board.NoSquare
	}
}

// startMoveRequest kicks off a MakeMove call on the side to move's
// controller if one isn't already running.
func (g *Game) startMoveRequest() {
	if g.gameOver || g.thinking {
		return
	}

	g.thinking = true
	g.thinkingCtrl = g.seatFor(g.position)
	pos := g.position
	ctrl := g.thinkingCtrl
	go func() {
		g.moveResult <- ctrl.MakeMove(pos)
	}()
}

// checkMoveResult polls for a completed MakeMove call and applies it.
func (g *Game) checkMoveResult() {
	if !g.thinking {
		return
	}

	select {
	case result := <-g.moveResult:
		g.thinking = false
		g.thinkingCtrl = nil
		if result == (board.Position{}) {
			// the in-flight request was cancelled; a fresh one is
			// started on the next Update.
			return
		}
		g.applyMove(result)
	default:
	}
}

// cancelInFlightMove asks whichever controller is currently thinking to
// stop, and drains the result channel so a stale value can't leak into
// the next request.
func (g *Game) cancelInFlightMove() {
	if !g.thinking {
		return
	}
	g.thinkingCtrl.CancelMove()
	<-g.moveResult
	g.thinking = false
	g.thinkingCtrl = nil
}

// applyMove installs a completed turn, logs its notation, plays its
// sound, clears the board selection, and checks for game end.
func (g *Game) applyMove(after board.Position) {
	before := g.position
	move := board.DiffMove(before, after)

	g.history = append(g.history, move)
	g.lastMove = move
	g.hasLastMove = true
	g.position = after
	g.clearSelection()

	promoted := (after.Queens &^ before.Queens) != 0
	switch {
	case promoted:
		g.audio.Play(SoundPromotion)
	case move.Capture:
		g.audio.Play(SoundCapture)
	default:
		g.audio.Play(SoundMove)
	}

	g.checkGameEnd()
}

// clearSelection clears drag state. The underlying HumanController, if
// any, clears its own selection the moment a turn completes.
func (g *Game) clearSelection() {
	g.dragging = false
	g.dragSquare = board.NoSquare
}

// selection reports the active seat's current selection, if the seat to
// move is a HumanController and has one.
func (g *Game) selection() (board.Square, board.Bitboard) {
	human, ok := g.seatFor(g.position).(*controller.HumanController)
	if !ok {
		return board.NoSquare, board.Empty
	}
	return human.Selected()
}

// checkGameEnd checks whether the position just reached is terminal.
func (g *Game) checkGameEnd() {
	if g.position.HasLost() {
		g.gameOver = true
		if g.position.BlackTurn {
			g.gameResult = "White wins, Black has no move"
		} else {
			g.gameResult = "Black wins, White has no move"
		}
		g.audio.Play(SoundGameEnd)
		g.recordResult(false)
		return
	}
	if g.position.IsDraw() {
		g.gameOver = true
		g.gameResult = "Draw by the 30-move no-capture rule"
		g.audio.Play(SoundGameEnd)
		g.recordResult(true)
	}
}

// recordResult stores the finished game's outcome from the human
// player's perspective; in Human vs Human mode every game counts as a
// win for whichever side didn't lose, so it's skipped for stats purposes.
func (g *Game) recordResult(draw bool) {
	if g.store == nil || g.mode != storage.ModeHumanVsComputer {
		return
	}

	// g.position.BlackTurn means black is the side with no move, so white
	// won; the human won iff that matches the color they're playing.
	whiteWon := g.position.BlackTurn
	humanIsWhite := g.playerColor == storage.ColorWhite
	won := !draw && whiteWon == humanIsWhite
	result := storage.GameResult{
		Won:        won,
		Draw:       draw,
		Mode:       g.mode,
		Difficulty: g.difficulty,
		Duration:   time.Since(g.startedAt),
	}
	if err := g.store.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game result: %v", err)
	}
}

// NewGameAction resets the game to starting position.
func (g *Game) NewGameAction() {
	g.cancelInFlightMove()
	g.position = board.StartingPosition
	g.history = nil
	g.hasLastMove = false
	g.clearSelection()
	g.gameOver = false
	g.gameResult = ""
	g.startedAt = time.Now()
}

// ToggleModeAction toggles between Human vs Human and Human vs Computer.
func (g *Game) ToggleModeAction() {
	if g.mode == storage.ModeHumanVsHuman {
		g.mode = storage.ModeHumanVsComputer
	} else {
		g.mode = storage.ModeHumanVsHuman
	}
	g.setupSeats()
	g.savePreferences()
}

// SetPlayerColor sets which color the human player controls.
func (g *Game) SetPlayerColor(c storage.PlayerColor) {
	g.playerColor = c
	g.setupSeats()
	g.savePreferences()
}

// SetDifficulty sets the search engine's difficulty.
func (g *Game) SetDifficulty(d storage.Difficulty) {
	g.difficulty = d
	g.engine.SetDifficulty(mctsDifficulty(d))
	g.savePreferences()
}

// Position returns the current position.
func (g *Game) Position() board.Position {
	return g.position
}

// MoveNotations renders the move history in spec.md §6 notation.
func (g *Game) MoveNotations() []string {
	out := make([]string, len(g.history))
	for i, m := range g.history {
		out[i] = m.String()
	}
	return out
}

// GameMode returns the current game mode.
func (g *Game) GameMode() storage.GameMode {
	return g.mode
}

// Difficulty returns the current search difficulty.
func (g *Game) Difficulty() storage.Difficulty {
	return g.difficulty
}

// GameOver returns true if the game is over.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// GameResult returns the game result string.
func (g *Game) GameResult() string {
	return g.gameResult
}

// IsThinking returns true if a controller's MakeMove is in flight — most
// visibly the computer's search, but it covers a human's pending click
// too.
func (g *Game) IsThinking() bool {
	return g.thinking
}

// Stats returns the persisted game statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// SearchStats reports the computer seat's most recent search: node
// count, total simulations, and the chosen move's win rate. Its
// NodeCount is 0 before the engine has searched at all.
func (g *Game) SearchStats() mcts.Stats {
	return g.engine.LastStats()
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.store != nil {
		g.store.Close()
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	selected, legal := g.selection()

	g.renderer.DrawBoard(screen)
	g.renderer.DrawHighlights(screen, selected, legal, g.lastMove, g.hasLastMove)
	g.renderer.DrawPieces(screen, g.position, g.dragging, g.dragSquare)

	if g.dragging {
		mx, my := g.input.MousePosition()
		stone := stoneFor(g.position, int(g.dragSquare), (g.position.White&board.FromIndex(int(g.dragSquare))) != 0)
		g.renderer.DrawDraggedPiece(screen, stone, mx, my)
	}

	g.panel.Draw(screen, g.renderer)
}

// Layout returns the game's screen dimensions, scaled for HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}
