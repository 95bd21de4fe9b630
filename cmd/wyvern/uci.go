// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// uci.go implements enough of the UCI protocol to drive engine.Board
// from a GUI: position setup, move application and a placeholder
// search. A full alpha-beta search, time management and transposition
// table are an external collaborator's concern; this command's job is
// to prove the engine package out over the wire protocol, not to play
// strong chess.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/wyvern-chess/wyvern/engine"
)

var errQuit = errors.New("uci: quit")

// UCI dispatches one protocol command at a time against a single live
// board, mirroring the GUI's own serialized view of the game.
type UCI struct {
	board  *engine.Board
	config EngineConfig
	rng    *rand.Rand
}

// NewUCI builds a UCI session applying cfg's startup options - notably
// Chess960, which must be set before any position command parses FEN
// castling rights.
func NewUCI(cfg EngineConfig) *UCI {
	engine.SetChess960(cfg.Chess960)
	return &UCI{
		board:  engine.StartingPosition(),
		config: cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Execute dispatches a single UCI command line. Unknown commands are
// logged and ignored, matching how real GUIs expect an engine to
// survive commands from a newer protocol revision.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		u.uci()
	case "isready":
		fmt.Println("readyok")
	case "ucinewgame":
		u.board = engine.StartingPosition()
	case "position":
		u.position(args)
	case "go":
		u.goCmd(args)
	case "stop", "ponderhit":
		// No background search goroutine to interrupt yet.
	case "setoption":
		u.setoption(args)
	case "quit":
		return errQuit
	default:
		log.Debugf("ignoring unknown command %q", cmd)
	}
	return nil
}

func (u *UCI) uci() {
	fmt.Printf("id name wyvern %v\n", buildVersion)
	fmt.Println("id author wyvern contributors")
	fmt.Println("option name Chess960 type check default false")
	fmt.Println("option name Hash type spin default 16 min 1 max 4096")
	fmt.Println("uciok")
}

// position handles "position [startpos | fen <fen>] [moves <m1> <m2> ...]".
func (u *UCI) position(args []string) {
	if len(args) == 0 {
		return
	}

	i := 0
	var b *engine.Board
	switch args[0] {
	case "startpos":
		b = engine.StartingPosition()
		i = 1
	case "fen":
		i = 1
		start := i
		for i < len(args) && args[i] != "moves" {
			i++
		}
		fen := strings.Join(args[start:i], " ")
		parsed, err := engine.ParseFEN(fen)
		if err != nil {
			log.Errorf("position fen %q: %v", fen, err)
			return
		}
		b = parsed
	default:
		log.Errorf("position: expected startpos or fen, got %q", args[0])
		return
	}

	if i < len(args) && args[i] == "moves" {
		i++
		for ; i < len(args); i++ {
			m, err := b.UCIToMove(args[i])
			if err != nil {
				log.Errorf("position moves: %v", err)
				return
			}
			if !b.MakeMove(m, nil) {
				log.Errorf("position moves: %q is illegal", args[i])
				return
			}
		}
	}
	u.board = b
}

// goCmd runs a single randomized-among-legal-moves placeholder search
// and prints "bestmove". It reads and discards the usual time-control
// tokens so the session survives a GUI's go command intact; it does
// not use them for anything, since this command has no clock-aware
// search loop to budget.
func (u *UCI) goCmd(args []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime", "nodes", "mate":
			i++ // skip the numeric argument
		}
	}

	var ml engine.MoveList
	u.board.GenerateMoves(&ml)

	var legal []engine.Move
	for _, m := range ml.Moves {
		if u.board.MakeMove(m, nil) {
			u.board.UnmakeMove()
			legal = append(legal, m)
		}
	}

	if len(legal) == 0 {
		fmt.Println("bestmove 0000")
		return
	}
	best := legal[u.rng.Intn(len(legal))]
	fmt.Printf("bestmove %v\n", u.board.MoveToUCI(best))
}

// setoption handles "setoption name <id> [value <x>]".
func (u *UCI) setoption(args []string) {
	if len(args) < 1 || args[0] != "name" {
		return
	}
	args = args[1:]

	valueAt := len(args)
	for i, a := range args {
		if a == "value" {
			valueAt = i
			break
		}
	}
	name := strings.Join(args[:valueAt], " ")
	var value string
	if valueAt+1 < len(args) {
		value = strings.Join(args[valueAt+1:], " ")
	}

	switch strings.ToLower(name) {
	case "chess960":
		on, err := strconv.ParseBool(value)
		if err != nil {
			log.Errorf("setoption Chess960: %v", err)
			return
		}
		engine.SetChess960(on)
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			log.Errorf("setoption Hash: %v", err)
			return
		}
		u.config.HashMB = mb
	default:
		log.Debugf("ignoring unsupported option %q", name)
	}
}
