package config

import (
	"io"
	"testing"

	"github.com/arzhanov/draughtsmcts/internal/mcts"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"moves.log"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseFlags returned an error: %v", err)
	}
	if opts.LogPath != "moves.log" {
		t.Fatalf("expected log path %q, got %q", "moves.log", opts.LogPath)
	}
	if opts.Difficulty != mcts.Medium {
		t.Fatalf("expected default difficulty Medium, got %v", opts.Difficulty)
	}
	if opts.Workers != mcts.NumWorkers {
		t.Fatalf("expected default workers %d, got %d", mcts.NumWorkers, opts.Workers)
	}
}

func TestParseFlagsDifficultyOverride(t *testing.T) {
	cases := []struct {
		flag string
		want mcts.Difficulty
	}{
		{"easy", mcts.Easy},
		{"medium", mcts.Medium},
		{"hard", mcts.Hard},
	}
	for _, c := range cases {
		opts, err := ParseFlags([]string{"-difficulty", c.flag, "moves.log"}, io.Discard)
		if err != nil {
			t.Fatalf("ParseFlags(%q) returned an error: %v", c.flag, err)
		}
		if opts.Difficulty != c.want {
			t.Fatalf("-difficulty %s: expected %v, got %v", c.flag, c.want, opts.Difficulty)
		}
	}
}

func TestParseFlagsRejectsUnknownDifficulty(t *testing.T) {
	if _, err := ParseFlags([]string{"-difficulty", "extreme", "moves.log"}, io.Discard); err == nil {
		t.Fatalf("expected an error for an unknown difficulty")
	}
}

func TestParseFlagsRequiresExactlyOnePositionalArgument(t *testing.T) {
	if _, err := ParseFlags(nil, io.Discard); err == nil {
		t.Fatalf("expected an error when no move-log path is given")
	}
	if _, err := ParseFlags([]string{"a.log", "b.log"}, io.Discard); err == nil {
		t.Fatalf("expected an error when more than one positional argument is given")
	}
}

func TestParseFlagsRejectsNonPositiveWorkers(t *testing.T) {
	if _, err := ParseFlags([]string{"-workers", "0", "moves.log"}, io.Discard); err == nil {
		t.Fatalf("expected an error for -workers 0")
	}
}
