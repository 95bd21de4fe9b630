// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTogglePieceIsSelfInverse(t *testing.T) {
	var zk zobristKeys
	pi := ColorFigure(White, Knight)
	sq := SquareFromStringMust(t, "f3")

	zk.togglePiece(pi, sq)
	require.NotZero(t, zk.main)
	require.NotZero(t, zk.minor)
	require.Zero(t, zk.major)

	zk.togglePiece(pi, sq)
	require.Zero(t, zk.main)
	require.Zero(t, zk.minor)
}

func TestTogglePieceKingAffectsMinorAndMajor(t *testing.T) {
	var zk zobristKeys
	pi := ColorFigure(Black, King)
	sq := SquareFromStringMust(t, "g8")

	zk.togglePiece(pi, sq)
	require.NotZero(t, zk.minor)
	require.NotZero(t, zk.major)
	require.NotZero(t, zk.nonPawn[Black])
	require.Zero(t, zk.nonPawn[White])
}

func TestTogglePieceRookAffectsOnlyMajor(t *testing.T) {
	var zk zobristKeys
	pi := ColorFigure(White, Rook)
	sq := SquareFromStringMust(t, "a1")

	zk.togglePiece(pi, sq)
	require.Zero(t, zk.minor)
	require.NotZero(t, zk.major)
}

func TestToggleColorIsSelfInverse(t *testing.T) {
	var zk zobristKeys
	zk.toggleColor()
	require.NotZero(t, zk.main)
	zk.toggleColor()
	require.Zero(t, zk.main)
}

func TestZobristCastleKeysDistinctPerCombination(t *testing.T) {
	seen := make(map[uint64]bool)
	for _, key := range ZobristCastle {
		require.False(t, seen[key], "duplicate castle key")
		seen[key] = true
	}
}
