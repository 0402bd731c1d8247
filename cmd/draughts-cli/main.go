// Command draughts-cli plays a game of international draughts headlessly
// or launches the Ebitengine front end. In headless mode every move is
// logged in PDN-like notation to both stdout and an output file; the
// graphical board does not write the log.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/arzhanov/draughtsmcts/internal/board"
	"github.com/arzhanov/draughtsmcts/internal/config"
	"github.com/arzhanov/draughtsmcts/internal/controller"
	"github.com/arzhanov/draughtsmcts/internal/mcts"
	"github.com/arzhanov/draughtsmcts/internal/simulate"
	"github.com/arzhanov/draughtsmcts/internal/ui"
)

func main() {
	opts, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts config.Options) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Play with the graphical board or headless? [U/H] ")
	if !scanner.Scan() {
		return fmt.Errorf("draughts-cli: no input")
	}
	mode := strings.TrimSpace(strings.ToLower(scanner.Text()))

	if mode == "u" || mode == "ui" {
		game := ui.NewGame()
		defer game.Close()

		ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
		ebiten.SetWindowTitle("draughtsmcts")
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetScreenFilterEnabled(true)

		return ebiten.RunGame(game)
	}

	log, err := newMoveLog(opts.LogPath)
	if err != nil {
		return err
	}
	defer log.Close()

	white, err := readSeat(scanner, "White", opts)
	if err != nil {
		return err
	}
	black, err := readSeat(scanner, "Black", opts)
	if err != nil {
		return err
	}

	return playHeadless(white, black, log)
}

// readSeat prompts for one side's controller, mirroring the original
// implementation's Cpu/Human choice (Gpu is out of scope here: no CUDA
// device simulator exists in this port).
func readSeat(scanner *bufio.Scanner, color string, opts config.Options) (controller.Controller, error) {
	for {
		fmt.Printf("Who should play %s (Computer or Human)? [C/H] ", color)
		if !scanner.Scan() {
			return nil, fmt.Errorf("draughts-cli: no input for %s", color)
		}
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "c", "computer":
			engine := mcts.NewEngine(simulate.NewHostSimulator(opts.Workers))
			engine.SetDifficulty(opts.Difficulty)
			return controller.NewComputerController(engine), nil
		case "h", "human":
			return controller.NewConsoleController(scanner), nil
		}
	}
}

// playHeadless drives the game loop with no front end: each seat's
// MakeMove is called to completion in turn, and the resulting move is
// logged before the next seat is asked to move.
func playHeadless(white, black controller.Controller, log *moveLog) error {
	pos := board.StartingPosition

	for {
		if pos.HasLost() {
			if pos.BlackTurn {
				fmt.Println("White wins")
			} else {
				fmt.Println("Black wins")
			}
			return nil
		}
		if pos.IsDraw() {
			fmt.Println("Draw")
			return nil
		}

		seat := white
		if pos.BlackTurn {
			seat = black
		}

		before := pos
		after := seat.MakeMove(pos)
		if after == (board.Position{}) {
			return fmt.Errorf("draughts-cli: move input ended unexpectedly")
		}

		move := board.DiffMove(before, after)
		log.Print(move.String())

		pos = after
	}
}

// moveLog writes every move notation to stdout and to an append-mode
// file, the way the original console driver keeps a transcript on disk.
type moveLog struct {
	file *os.File
}

func newMoveLog(path string) (*moveLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("draughts-cli: open move log: %w", err)
	}
	return &moveLog{file: f}, nil
}

func (l *moveLog) Print(line string) {
	fmt.Println(line)
	fmt.Fprintln(l.file, line)
}

func (l *moveLog) Close() error {
	return l.file.Close()
}
