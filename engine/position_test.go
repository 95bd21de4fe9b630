// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartingPositionFEN(t *testing.T) {
	b := StartingPosition()
	require.Equal(t, FENStartPos, b.String())
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		require.Equal(t, fen, b.String())
	}
}

func TestMakeUnmakeRestoresZobrist(t *testing.T) {
	b := StartingPosition()
	before := b.Keys

	var ml MoveList
	b.GenerateMoves(&ml)
	require.NotEmpty(t, ml.Moves)

	for _, m := range ml.Moves {
		var ub UpdateBuffer
		ok := b.MakeMove(m, &ub)
		if !ok {
			continue
		}
		require.NotEqual(t, before.main, b.Keys.main, "key should change after %v", m)
		b.UnmakeMove()
		require.Equal(t, before, b.Keys, "keys should be restored after unmake of %v", m)
	}
}

func TestMakeUnmakeRestoresMailboxAndBitboards(t *testing.T) {
	b, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	beforeMailbox := b.Mailbox
	beforeByFigure := b.ByFigure
	beforeCastling := b.Castling

	var ml MoveList
	b.GenerateMoves(&ml)
	for _, m := range ml.Moves {
		ok := b.MakeMove(m, nil)
		if !ok {
			continue
		}
		b.UnmakeMove()
		require.Equal(t, beforeMailbox, b.Mailbox, "mailbox mismatch after %v", m)
		require.Equal(t, beforeByFigure, b.ByFigure, "bitboards mismatch after %v", m)
		require.Equal(t, beforeCastling, b.Castling, "castling mismatch after %v", m)
	}
}

func TestIncrementalZobristMatchesFromScratch(t *testing.T) {
	b := StartingPosition()
	var ml MoveList
	b.GenerateMoves(&ml)

	for _, m := range ml.Moves {
		if !b.MakeMove(m, nil) {
			continue
		}
		want := computeKeysFromScratch(b)
		require.Equal(t, want, b.Keys, "zobrist mismatch after %v", m)
		b.UnmakeMove()
	}
}

func TestMakeMoveRejectsSelfCheck(t *testing.T) {
	// White king on e1, knight on e3 pinned against it by the rook on
	// e8; Ne3-d5 would step off the e-file and expose the king.
	b, err := ParseFEN("k3r3/8/8/8/8/4N3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m := NewMove(SquareFromStringMust(t, "e3"), SquareFromStringMust(t, "d5"), FlagQuiet)
	require.False(t, b.MakeMove(m, nil))
}

func SquareFromStringMust(t *testing.T, s string) Square {
	t.Helper()
	sq, err := SquareFromString(s)
	require.NoError(t, err)
	return sq
}

func TestNullMoveRoundTrip(t *testing.T) {
	b := StartingPosition()
	before := *b

	b.MakeNullMove()
	require.NotEqual(t, before.Side, b.Side)
	require.False(t, b.HasEp)

	b.UnmakeNullMove()
	require.Equal(t, before.Side, b.Side)
	require.Equal(t, before.Keys, b.Keys)
}

func TestInCheckAndThreatsAfterScholarsMateSetup(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p2Q/8/4P3/PPPP1PPP/RNB1KBNR b KQkq - 1 2")
	require.NoError(t, err)
	require.False(t, b.InCheck())
	require.True(t, b.IsAttacked(SquareFromStringMust(t, "f7"), White))
}

func TestRepetitionTwofoldInTree(t *testing.T) {
	b := StartingPosition()
	// Shuffle the same knights out and back twice: the starting
	// position recurs at ply 4 and again at ply 8, well inside this
	// board's own move history, so it should be flagged a repetition
	// before a literal third game occurrence would be required.
	moves := []string{
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	}
	for i, mv := range moves {
		m, err := b.UCIToMove(mv)
		require.NoError(t, err)
		require.True(t, b.MakeMove(m, nil), "move %d (%s)", i, mv)
	}
	require.True(t, b.IsRepetition())
	require.True(t, b.IsDraw())
}

func TestInsufficientMaterialBareKings(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, b.HasInsufficientMaterial())
}

func TestInsufficientMaterialKNNvK(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/1NNK4 w - - 0 1")
	require.NoError(t, err)
	// KNN vs K is not a forced draw; the rules don't terminate the game here.
	require.False(t, b.HasInsufficientMaterial())
}

func TestInsufficientMaterialSameColorBishops(t *testing.T) {
	b, err := ParseFEN("4k2b/8/8/8/8/8/8/4K1B1 w - - 0 1")
	require.NoError(t, err)
	require.True(t, b.HasInsufficientMaterial())
}

func TestInsufficientMaterialOppositeColorBishops(t *testing.T) {
	b, err := ParseFEN("4k1b1/8/8/8/8/8/8/4K1B1 w - - 0 1")
	require.NoError(t, err)
	require.False(t, b.HasInsufficientMaterial())
}

func TestVerifyAcceptsStartingPosition(t *testing.T) {
	b := StartingPosition()
	require.NoError(t, b.Verify())
}

func TestCastlingChess960RookOrigin(t *testing.T) {
	SetChess960(true)
	defer SetChess960(false)

	b, err := ParseFEN("rk2r3/pppppppp/8/8/8/8/PPPPPPPP/RK2R3 w KQkq - 0 1")
	require.NoError(t, err)

	rookSq, ok := b.Castling.rookSquare(White, true)
	require.True(t, ok)
	require.Equal(t, "e1", rookSq.String())
}

func TestCastlingChess960KingAlreadyOnDestinationSquare(t *testing.T) {
	SetChess960(true)
	defer SetChess960(false)

	// King starts on g1, its own kingside castling destination; the
	// rook it castles with starts on h1. Nothing about the king's own
	// square should change, but it must still end up on the board.
	b, err := ParseFEN("nrnbbqkr/pppppppp/8/8/8/8/PPPPPPPP/NRNBBQKR w KQkq - 0 1")
	require.NoError(t, err)

	kingSq := SquareFromStringMust(t, "g1")
	rookSq := SquareFromStringMust(t, "h1")
	require.Equal(t, kingSq, b.KingSquare(White))

	m := NewMove(kingSq, rookSq, FlagCastle)
	require.True(t, b.MakeMove(m, nil))

	require.Equal(t, 1, b.ByFigure[King][White].Popcnt())
	require.Equal(t, ColorFigure(White, King), b.PieceAt(kingSq))
	require.Equal(t, ColorFigure(White, Rook), b.PieceAt(SquareFromStringMust(t, "f1")))

	b.UnmakeMove()
	require.Equal(t, ColorFigure(White, King), b.PieceAt(kingSq))
	require.Equal(t, ColorFigure(White, Rook), b.PieceAt(rookSq))
}
