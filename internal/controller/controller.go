// Package controller adapts a front end's input events into completed
// moves: HumanController turns a sequence of board-tile taps into a move,
// ComputerController asks an mcts.Engine for one, and ConsoleController
// parses one line of move notation per turn from a terminal. All three
// satisfy the same Controller contract so a game loop can drive any of
// them without caring which is seated at a given side of the board.
package controller

import (
	"bufio"
	"fmt"

	"github.com/arzhanov/draughtsmcts/internal/board"
	"github.com/arzhanov/draughtsmcts/internal/mcts"
)

// Controller is the contract a game loop drives a turn through: OnClick
// reports a UI event (a no-op for controllers that don't need one),
// MakeMove blocks until a move is ready, and CancelMove asks an in-flight
// MakeMove to return early. MakeMove runs on the game loop's goroutine;
// OnClick and CancelMove are called from elsewhere (a UI thread) and must
// not block.
type Controller interface {
	OnClick(x, y float64)
	MakeMove(position board.Position) board.Position
	CancelMove()
}

// HumanController turns a sequence of OnClick board-tile taps into a
// move: the first tap on one of the side-to-move's stones selects it and
// highlights its legal destinations (mandatory-capture destinations if
// any of the side's stones can capture); a second tap on a highlighted
// destination applies the move, continuing to prompt for further hops if
// the move was a capture that can still continue.
type HumanController struct {
	working  bool
	position board.Position
	saved    board.Position

	selectedIndex int
	selectedMoves board.Bitboard
	capturing     bool

	result chan board.Position
}

// NewHumanController returns a HumanController with nothing selected.
func NewHumanController() *HumanController {
	return &HumanController{selectedIndex: int(board.NoSquare)}
}

// MakeMove blocks until a full move has been entered via OnClick, or
// CancelMove is called.
func (c *HumanController) MakeMove(position board.Position) board.Position {
	c.saved = position
	c.position = position
	c.selectedIndex = int(board.NoSquare)
	c.working = true
	c.result = make(chan board.Position, 1)
	return <-c.result
}

// CancelMove aborts an in-flight MakeMove, which returns the zero
// Position.
func (c *HumanController) CancelMove() {
	if !c.working {
		return
	}
	c.working = false
	c.result <- board.Position{}
}

// OnClick reports a tap at board-relative coordinates in [0,1)x[0,1),
// column-major the same way the front end's tile grid is laid out.
func (c *HumanController) OnClick(x, y float64) {
	if !c.working {
		return
	}

	i, j := int(x*8), int(y*8)
	if (i+j)%2 != 0 {
		// light square: not addressable, deselect.
		c.selectedIndex = int(board.NoSquare)
		c.position = c.saved
		return
	}

	toIndex := board.CoordsToIndex(i, j)
	to := board.FromCoords(i, j)

	if c.selectedIndex != int(board.NoSquare) && c.selectedMoves.HasBit(toIndex) {
		if c.capturing {
			c.position.Capture(c.selectedIndex, toIndex)
		} else {
			c.position.Move(c.selectedIndex, toIndex)
		}

		if c.capturing && !c.position.GetCaptures(to).IsEmpty() {
			// the same stone must keep capturing.
			c.selectChecker(toIndex)
			return
		}

		c.selectedIndex = int(board.NoSquare)
		c.working = false
		c.position.EndTurn()
		c.result <- c.position
		return
	}

	if (c.position.Checkers() & to).IsEmpty() {
		c.selectedIndex = int(board.NoSquare)
		c.position = c.saved
		return
	}

	c.selectChecker(toIndex)
}

// Selected returns the index of the stone currently awaiting its second
// tap, and its legal destinations, or (NoSquare, Empty) if nothing is
// selected. Safe to call concurrently with an in-flight MakeMove: it only
// ever observes state OnClick itself last wrote, and OnClick runs on the
// same goroutine a front end calls Selected from.
func (c *HumanController) Selected() (board.Square, board.Bitboard) {
	if !c.working || c.selectedIndex == int(board.NoSquare) {
		return board.NoSquare, board.Empty
	}
	return board.Square(c.selectedIndex), c.selectedMoves
}

// selectChecker selects the stone at index, preferring its captures over
// its plain moves, and refusing the selection entirely if some other
// stone of this side must capture instead.
func (c *HumanController) selectChecker(index int) {
	from := board.FromIndex(index)
	choices := c.position.GetCaptures(from)
	c.capturing = true

	if choices.IsEmpty() {
		if !c.position.GetAllCapturing().IsEmpty() {
			c.selectedIndex = int(board.NoSquare)
			return
		}
		c.capturing = false
		choices = c.position.GetMoves(from)
	}

	c.selectedIndex = index
	c.selectedMoves = choices
}

// ComputerController asks an mcts.Engine for a move.
type ComputerController struct {
	engine *mcts.Engine
}

// NewComputerController returns a ComputerController backed by engine.
func NewComputerController(engine *mcts.Engine) *ComputerController {
	return &ComputerController{engine: engine}
}

// OnClick is a no-op: the computer doesn't take UI input.
func (c *ComputerController) OnClick(x, y float64) {}

// MakeMove runs the engine's search to completion and returns its pick.
func (c *ComputerController) MakeMove(position board.Position) board.Position {
	return c.engine.FindBestMove(position)
}

// CancelMove asks the engine's in-flight search to stop.
func (c *ComputerController) CancelMove() {
	c.engine.CancelSearch()
}

// ConsoleController reads a move in board.ParseMove's "from-to" or
// "from:x1:...:xn" notation from a scanner, one line per turn, the way
// the original console driver blocks on `std::cin >> move`.
type ConsoleController struct {
	scanner *bufio.Scanner
}

// NewConsoleController returns a ConsoleController reading moves from
// scanner (typically wrapping os.Stdin).
func NewConsoleController(scanner *bufio.Scanner) *ConsoleController {
	return &ConsoleController{scanner: scanner}
}

// OnClick is a no-op: console input isn't driven by board taps.
func (c *ConsoleController) OnClick(x, y float64) {}

// MakeMove blocks reading one line of move notation, applies it to
// position, and returns the resulting position. A malformed line has its
// parse error printed and the next line is read, matching the original
// implementation's terse "bad input, try again" loop. When the scanner
// has no more input, MakeMove returns the zero Position.
func (c *ConsoleController) MakeMove(position board.Position) board.Position {
	for {
		if !c.scanner.Scan() {
			return board.Position{}
		}

		move, err := board.ParseMove(c.scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}

		pos := position
		if move.Capture {
			from := move.From
			for _, to := range move.Path {
				pos.Capture(from, to)
				from = to
			}
		} else {
			pos.Move(move.From, move.Path[0])
		}
		pos.EndTurn()
		return pos
	}
}

// CancelMove is a no-op: a blocking Scan has no cooperative way to be
// interrupted from another goroutine, matching the original
// implementation's empty ConsoleController::CancelMove.
func (c *ConsoleController) CancelMove() {}
