// Package config parses cmd/draughts-cli's command-line flags into
// Options: the move-log path, the initial mcts.Difficulty preset and the
// rollout worker count. The presets themselves live in
// mcts.DifficultySettings; the GUI does not read this package.
package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/arzhanov/draughtsmcts/internal/mcts"
)

// Options is cmd/draughts-cli's parsed command line: a positional move-log
// path plus optional overrides for the search preset a fresh Engine
// starts at.
type Options struct {
	LogPath    string
	Difficulty mcts.Difficulty
	Workers    int
}

// ParseFlags parses args (normally os.Args[1:]) into Options. errOut
// receives flag.FlagSet's usage/error output; pass os.Stderr in main.
func ParseFlags(args []string, errOut io.Writer) (Options, error) {
	fs := flag.NewFlagSet("draughts-cli", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "usage: draughts-cli [-difficulty easy|medium|hard] [-workers N] <move-log-path>\n")
		fs.PrintDefaults()
	}

	difficulty := fs.String("difficulty", "medium", "initial computer search difficulty: easy, medium or hard")
	workers := fs.Int("workers", mcts.NumWorkers, "parallel rollout workers for the host simulator")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return Options{}, fmt.Errorf("config: expected exactly one positional argument (move-log path), got %d", fs.NArg())
	}

	d, err := parseDifficulty(*difficulty)
	if err != nil {
		return Options{}, err
	}

	if *workers < 1 {
		return Options{}, fmt.Errorf("config: -workers must be at least 1, got %d", *workers)
	}

	return Options{
		LogPath:    fs.Arg(0),
		Difficulty: d,
		Workers:    *workers,
	}, nil
}

func parseDifficulty(s string) (mcts.Difficulty, error) {
	switch s {
	case "easy":
		return mcts.Easy, nil
	case "medium":
		return mcts.Medium, nil
	case "hard":
		return mcts.Hard, nil
	default:
		return 0, fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
	}
}
