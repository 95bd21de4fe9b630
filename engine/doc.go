// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the board representation, move generation,
// incremental make/unmake and the history-table family of a UCI chess
// engine's core.
//
// Position (basic.go, castle.go, position.go) uses:
//
//   - Bitboards for representation - https://www.chessprogramming.org/Bitboards
//   - Magic bitboards for sliding move generation - https://www.chessprogramming.org/Magic+Bitboards
//   - Chess960/DFRC castling encoded as king-captures-own-rook, so the
//     king's destination never has to be special-cased against its own
//     rook.
//
// Move generation (movegen.go) produces pseudo-legal moves in three
// flavours - combined, captures-only and quiets-only - that agree on
// the same set; legality is decided by make, not by the generator.
//
// Repetition (position.go, cuckoo.go) combines a plain backward scan
// for three/twofold repetition with the Hyatt/Tufts cuckoo algorithm
// for detecting upcoming repetitions before they occur.
//
// History (history.go) keeps the butterfly, tactical, continuation,
// correction and killer move tables the search layer updates after
// every node; this package only stores and updates them; the search
// and evaluation that interpret them live outside this module.
package engine
